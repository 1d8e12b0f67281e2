package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkruglov/chitalka/internal/catalog"
)

func searchFixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	return loadTestCatalog(t, map[string][]string{
		"books.inp": {
			inpRow("Глуховский,Дмитрий", "sf", "Метро 2035", "Метро", "3", "3", "100", "3", "fb2"),
			inpRow("Глуховский,Дмитрий", "sf", "Метро 2033", "Метро", "1", "1", "100", "1", "fb2"),
			inpRow("Глуховский,Дмитрий", "sf", "Метро 2034", "Метро", "2", "2", "100", "2", "fb2"),
			inpRow("Оруэлл,Джордж", "prose", "1984", "", "", "4", "100", "4", "fb2"),
			inpRow("Оруэлл,Джордж", "prose", "Скотный двор", "", "", "5", "100", "5", "fb2"),
		},
	})
}

/*
TestSearch covers the sequential filter: single and combined criteria,
case-insensitive substring matching, and the empty result.
*/
func TestSearch(t *testing.T) {
	c := searchFixture(t)

	tests := []struct {
		name       string
		filter     catalog.Filter
		wantLibIDs []string
	}{
		{"by_author", catalog.Filter{Author: "оруэлл"}, []string{"4", "5"}},
		{"by_series", catalog.Filter{Series: "метро"}, []string{"1", "2", "3"}},
		{"author_and_title", catalog.Filter{Author: "глуховский", Title: "2034"}, []string{"2"}},
		{"series_number", catalog.Filter{Series: "Метро", SeriesNumber: "2"}, []string{"2"}},
		{"substring_title", catalog.Filter{Title: "двор"}, []string{"5"}},
		{"no_match", catalog.Filter{Author: "толстой"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, book := range c.Search(tt.filter) {
				got = append(got, book.LibID)
			}
			assert.Equal(t, tt.wantLibIDs, got)
		})
	}
}

/*
TestSearch_SortsBySeriesNumber verifies numeric ordering with non-numeric
numbers pushed to the end.
*/
func TestSearch_SortsBySeriesNumber(t *testing.T) {
	c := loadTestCatalog(t, map[string][]string{
		"books.inp": {
			inpRow("Автор", "sf", "Вне серии", "Цикл", "", "10", "100", "10", "fb2"),
			inpRow("Автор", "sf", "Вторая", "Цикл", "2", "12", "100", "12", "fb2"),
			inpRow("Автор", "sf", "Первая", "Цикл", "1", "11", "100", "11", "fb2"),
		},
	})

	results := c.Search(catalog.Filter{Series: "Цикл"})
	require.Len(t, results, 3)
	assert.Equal(t, "11", results[0].LibID)
	assert.Equal(t, "12", results[1].LibID)
	assert.Equal(t, "10", results[2].LibID)
}

/*
TestSearchSmart checks the all-parts-must-match query semantics and the
repeated-character tolerance.
*/
func TestSearchSmart(t *testing.T) {
	c := searchFixture(t)

	tests := []struct {
		name       string
		query      string
		wantLibIDs []string
	}{
		{"author_and_title", "глуховский 2033", []string{"1"}},
		{"author_only", "оруэлл", []string{"4", "5"}},
		{"collapsed_typo", "оруэл 1984", []string{"4"}},
		{"doubled_typo", "оруэлллл", []string{"4", "5"}},
		{"case_insensitive", "МЕТРО 2035", []string{"3"}},
		{"unmatched_part", "глуховский 1984", nil},
		{"blank_query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, book := range c.SearchSmart(tt.query) {
				got = append(got, book.LibID)
			}
			assert.Equal(t, tt.wantLibIDs, got)
		})
	}
}

/*
TestNormalizeQuery verifies lowercasing and run collapsing.
*/
func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "МеТрО", "метро"},
		{"collapse_runs", "Оруэлллл", "оруэл"},
		{"collapse_latin", "bookkeeper", "bokeper"},
		{"keeps_spacing", "два  слова", "два слова"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.NormalizeQuery(tt.input))
		})
	}
}

/*
TestFilter_IsEmpty covers the no-criteria check.
*/
func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, catalog.Filter{}.IsEmpty())
	assert.False(t, catalog.Filter{Author: "x"}.IsEmpty())
	assert.False(t, catalog.Filter{Date: "2024"}.IsEmpty())
}
