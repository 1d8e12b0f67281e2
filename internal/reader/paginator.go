package reader

import (
	"strings"
	"unicode/utf8"
)

// DefaultPageSize is the pagination budget, in characters, used when no
// explicit budget is configured.
const DefaultPageSize = 2000

// paragraphSeparator delimits paragraphs in the flat body stream and
// rejoins the paragraphs of a rendered page.
const paragraphSeparator = "\n\n"

// SplitPages splits a flat body text into budget-sized pages without
// breaking paragraphs, except when a single paragraph exceeds the budget.
//
// The budget counts characters (runes), not bytes. Joining a paragraph onto
// a page costs its length plus two for the separator. A paragraph longer
// than the budget flushes the pending page and is hard-split into
// consecutive budget-sized chunks, each its own page, so no produced page
// ever exceeds the budget.
//
// The split is a pure function of (body, budget): the session store caches
// the page count while pages themselves are recomputed on every render, and
// any nondeterminism here would corrupt navigation bounds.
func SplitPages(body string, budget int) []string {
	if budget < 1 {
		budget = DefaultPageSize
	}

	var pages []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			pages = append(pages, strings.Join(current, paragraphSeparator))
			current = nil
			currentLen = 0
		}
	}

	for _, paragraph := range strings.Split(body, paragraphSeparator) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		length := utf8.RuneCountInString(paragraph)

		if currentLen+length+2 <= budget {
			current = append(current, paragraph)
			currentLen += length + 2
			continue
		}

		if length > budget {
			flush()
			runes := []rune(paragraph)
			for start := 0; start < len(runes); start += budget {
				end := start + budget
				if end > len(runes) {
					end = len(runes)
				}
				pages = append(pages, string(runes[start:end]))
			}
			continue
		}

		flush()
		current = []string{paragraph}
		currentLen = length + 2
	}

	flush()
	return pages
}

// PageText returns the text of one 0-indexed page, or "" when the index is
// out of range. Callers bounds-check against the cached total before
// trusting the result.
func PageText(body string, index, budget int) string {
	if index < 0 {
		return ""
	}
	pages := SplitPages(body, budget)
	if index >= len(pages) {
		return ""
	}
	return pages[index]
}
