package reader_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkruglov/chitalka/internal/reader"
)

/*
TestSplitPages_KeepsParagraphsIntact verifies that paragraphs move to the
next page whole instead of being cut mid-sentence.
*/
func TestSplitPages_KeepsParagraphsIntact(t *testing.T) {
	a := strings.Repeat("а", 60)
	b := strings.Repeat("б", 60)
	c := strings.Repeat("в", 60)
	body := a + "\n\n" + b + "\n\n" + c

	pages := reader.SplitPages(body, 130)

	require.Len(t, pages, 2)
	assert.Equal(t, a+"\n\n"+b, pages[0])
	assert.Equal(t, c, pages[1])
}

/*
TestSplitPages_BudgetIsRunes checks that the budget counts characters, not
bytes: Cyrillic text is two bytes per rune in UTF-8.
*/
func TestSplitPages_BudgetIsRunes(t *testing.T) {
	paragraph := strings.Repeat("ж", 100)

	pages := reader.SplitPages(paragraph, 100)

	require.Len(t, pages, 1)
	assert.Equal(t, 100, utf8.RuneCountInString(pages[0]))
}

/*
TestSplitPages_OversizeParagraph verifies that an over-budget paragraph
first flushes the pending page and is then hard-split into budget-sized
chunks, so no page ever exceeds the budget.
*/
func TestSplitPages_OversizeParagraph(t *testing.T) {
	small := strings.Repeat("а", 10)
	huge := strings.Repeat("б", 250)
	body := small + "\n\n" + huge

	pages := reader.SplitPages(body, 100)

	require.Len(t, pages, 4)
	assert.Equal(t, small, pages[0])
	for _, page := range pages {
		assert.LessOrEqual(t, utf8.RuneCountInString(page), 100)
	}
	assert.Equal(t, 50, utf8.RuneCountInString(pages[3]))
}

/*
TestSplitPages_LongBookPageCount walks a 5000-character single paragraph
through the default-style budget: 2000 + 2000 + 1000.
*/
func TestSplitPages_LongBookPageCount(t *testing.T) {
	body := strings.Repeat("с", 5000)

	pages := reader.SplitPages(body, 2000)

	require.Len(t, pages, 3)
	assert.Equal(t, 2000, utf8.RuneCountInString(pages[0]))
	assert.Equal(t, 2000, utf8.RuneCountInString(pages[1]))
	assert.Equal(t, 1000, utf8.RuneCountInString(pages[2]))
}

/*
TestSplitPages_CoversAllText verifies no text is lost across page breaks.
*/
func TestSplitPages_CoversAllText(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 40; i++ {
		paragraphs = append(paragraphs, strings.Repeat(string(rune('а'+i%10)), 25+i))
	}
	body := strings.Join(paragraphs, "\n\n")

	pages := reader.SplitPages(body, 120)

	rejoined := strings.Join(pages, "\n\n")
	assert.Equal(t, body, rejoined)
}

/*
TestSplitPages_Determinism checks that repeated splits agree, since pages
are recomputed on every render against a cached count.
*/
func TestSplitPages_Determinism(t *testing.T) {
	body := strings.Repeat("абв где ёжз\n\n", 300)

	first := reader.SplitPages(body, 500)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, reader.SplitPages(body, 500))
	}
}

/*
TestSplitPages_EmptyAndBlank verifies degenerate inputs paginate to zero
pages.
*/
func TestSplitPages_EmptyAndBlank(t *testing.T) {
	assert.Empty(t, reader.SplitPages("", 100))
	assert.Empty(t, reader.SplitPages("\n\n  \n\n", 100))
}

/*
TestPageText covers the out-of-range contract.
*/
func TestPageText(t *testing.T) {
	body := strings.Repeat("а", 50) + "\n\n" + strings.Repeat("б", 50)

	assert.Equal(t, strings.Repeat("а", 50), reader.PageText(body, 0, 60))
	assert.Equal(t, strings.Repeat("б", 50), reader.PageText(body, 1, 60))
	assert.Equal(t, "", reader.PageText(body, 2, 60))
	assert.Equal(t, "", reader.PageText(body, -1, 60))
}
