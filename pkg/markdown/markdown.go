// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

// Package markdown provides helpers for building Telegram MarkdownV2 text.
//
// # Usage
//
// All free text that ends up in an outgoing message must pass through
// [Escape] exactly once: the FB2 parser escapes body text at parse time,
// the page renderer escapes metadata at render time.
package markdown

import "strings"

// reserved is the set of punctuation characters MarkdownV2 treats as markup.
const reserved = "_*[]()~`>#+-=|{}.!"

// Escape backslash-escapes every MarkdownV2-reserved character in s.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Bold wraps already-escaped text in bold emphasis markers.
func Bold(s string) string { return "**" + s + "**" }

// Emphasis wraps already-escaped text in italic emphasis markers.
func Emphasis(s string) string { return "*" + s + "*" }

// Line wraps already-escaped text in the underscore italics used for
// metadata lines (series, author, page footer).
func Line(s string) string { return "_" + s + "_" }
