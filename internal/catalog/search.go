package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Filter holds the criteria of a sequential (field-by-field) search.
// Empty fields are skipped; non-empty fields are case-insensitive
// substring matches against their column.
type Filter struct {
	Author       string
	Title        string
	Series       string
	SeriesNumber string
	Date         string
}

// IsEmpty reports whether no criterion was provided at all.
func (f Filter) IsEmpty() bool {
	return f.Author == "" && f.Title == "" && f.Series == "" &&
		f.SeriesNumber == "" && f.Date == ""
}

// Search runs the sequential multi-criterion search.
func (c *Catalog) Search(f Filter) []*Book {
	author := strings.ToLower(f.Author)
	title := strings.ToLower(f.Title)
	series := strings.ToLower(f.Series)
	seriesNumber := strings.ToLower(f.SeriesNumber)
	date := strings.ToLower(f.Date)

	var results []*Book
	for _, book := range c.books {
		if author != "" && !strings.Contains(strings.ToLower(book.Author), author) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(book.Title), title) {
			continue
		}
		if series != "" && !strings.Contains(strings.ToLower(book.Series), series) {
			continue
		}
		if seriesNumber != "" && !strings.Contains(strings.ToLower(book.SeriesNo), seriesNumber) {
			continue
		}
		if date != "" && !strings.Contains(strings.ToLower(book.Date), date) {
			continue
		}
		results = append(results, book)
	}

	sortBySeriesNumber(results)
	return results
}

// SearchSmart runs the single-query search: every whitespace-separated part
// of the normalized query must occur in the book's normalized
// "author title series number" haystack.
//
// Normalization collapses runs of a repeated character, so "Оруэлл" still
// matches a query typed as "Оруэл" (and vice versa for doubled typos).
func (c *Catalog) SearchSmart(query string) []*Book {
	parts := strings.Fields(NormalizeQuery(query))
	if len(parts) == 0 {
		return nil
	}

	var results []*Book
	for _, book := range c.books {
		haystack := NormalizeQuery(book.Author + " " + book.Title + " " + book.Series + " " + book.SeriesNo)

		matched := true
		for _, part := range parts {
			if !strings.Contains(haystack, part) {
				matched = false
				break
			}
		}
		if matched {
			results = append(results, book)
		}
	}

	sortBySeriesNumber(results)
	return results
}

// NormalizeQuery lowercases, NFC-normalizes, and collapses every run of a
// repeated character into a single occurrence.
func NormalizeQuery(s string) string {
	s = strings.ToLower(norm.NFC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// sortBySeriesNumber orders results by numeric series number ascending,
// with non-numeric numbers (including empty) last. The sort is stable so
// catalog order breaks ties.
func sortBySeriesNumber(books []*Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return seriesSortKey(books[i]) < seriesSortKey(books[j])
	})
}

func seriesSortKey(book *Book) int {
	n, err := strconv.Atoi(book.SeriesNo)
	if err != nil || n < 0 {
		return math.MaxInt
	}
	return n
}
