// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkruglov/chitalka/pkg/markdown"
)

/*
TestEscape verifies that every MarkdownV2 special character is escaped and
ordinary text passes through untouched.
*/
func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_text", "Метро 2033", "Метро 2033"},
		{"dot_and_bang", "Гл. 1!", "Гл\\. 1\\!"},
		{"underscore_and_star", "a_b*c", "a\\_b\\*c"},
		{"brackets_and_parens", "[x](y)", "\\[x\\]\\(y\\)"},
		{"dashes_and_braces", "a-b{c}", "a\\-b\\{c\\}"},
		{"all_reserved", "_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markdown.Escape(tt.input))
		})
	}
}

/*
TestWrappers checks the Bold, Emphasis, and Line decorators.
*/
func TestWrappers(t *testing.T) {
	assert.Equal(t, "**Заголовок**", markdown.Bold("Заголовок"))
	assert.Equal(t, "*курсив*", markdown.Emphasis("курсив"))
	assert.Equal(t, "_Автор_", markdown.Line("Автор"))
}
