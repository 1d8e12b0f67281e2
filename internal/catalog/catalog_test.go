package catalog_test

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkruglov/chitalka/internal/catalog"
)

// inpRow builds one .inp line in the fixed INPX column order. Unused
// trailing columns (rating, keywords) are left empty.
func inpRow(author, genre, title, series, seriesNo, file, size, libID, ext string) string {
	fields := []string{author, genre, title, series, seriesNo, file, size, libID, "0", ext, "2024-01-15", "ru", "", ""}
	return strings.Join(fields, "\x04")
}

// writeINPX assembles an INPX archive from member-name to lines pairs and
// returns its path.
func writeINPX(t *testing.T, members map[string][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.inpx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, lines := range members {
		member, err := w.Create(name)
		require.NoError(t, err)
		_, err = member.Write([]byte(strings.Join(lines, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func loadTestCatalog(t *testing.T, members map[string][]string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(writeINPX(t, members), t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

/*
TestLoad verifies indexing across members, the archive-name derivation from
the .inp member name, and lookup by library id.
*/
func TestLoad(t *testing.T) {
	c := loadTestCatalog(t, map[string][]string{
		"fb2-000001-100000.inp": {
			inpRow("Глуховский,Дмитрий", "sf", "Метро 2033", "Метро", "1", "12345", "1048576", "12345", "fb2"),
			inpRow("Оруэлл,Джордж", "prose", "1984", "", "", "67890", "524288", "67890", "fb2"),
		},
		"fb2-100001-200000.inp": {
			inpRow("Лем,Станислав", "sf", "Солярис", "", "", "111", "2048", "111", "fb2"),
		},
	})

	assert.Equal(t, 3, c.Len())

	book, ok := c.FindByLibID("12345")
	require.True(t, ok)
	assert.Equal(t, "Метро 2033", book.Title)
	assert.Equal(t, "Метро", book.Series)
	assert.Equal(t, int64(1048576), book.Size)
	assert.Equal(t, "fb2-000001-100000.zip", book.Archive)

	book, ok = c.FindByLibID("111")
	require.True(t, ok)
	assert.Equal(t, "fb2-100001-200000.zip", book.Archive)

	_, ok = c.FindByLibID("404")
	assert.False(t, ok)
}

/*
TestLoad_StripsColons checks that colon sub-separators are removed from the
author and genre columns.
*/
func TestLoad_StripsColons(t *testing.T) {
	c := loadTestCatalog(t, map[string][]string{
		"books.inp": {
			inpRow("Стругацкий,Аркадий:Стругацкий,Борис:", "sf_social:sf:", "Пикник на обочине", "", "", "1", "100", "1", "fb2"),
		},
	})

	book, ok := c.FindByLibID("1")
	require.True(t, ok)
	assert.Equal(t, "Стругацкий,АркадийСтругацкий,Борис", book.Author)
	assert.Equal(t, "sf_socialsf", book.Genre)
}

/*
TestLoad_SkipsMalformedRows verifies that short rows are dropped without
failing the load.
*/
func TestLoad_SkipsMalformedRows(t *testing.T) {
	c := loadTestCatalog(t, map[string][]string{
		"books.inp": {
			"truncated\x04row",
			inpRow("Автор", "genre", "Название", "", "", "5", "100", "5", "fb2"),
			"",
		},
	})

	assert.Equal(t, 1, c.Len())
	_, ok := c.FindByLibID("5")
	assert.True(t, ok)
}

/*
TestLoad_NoINPMembers checks the error for an archive without any .inp
member.
*/
func TestLoad_NoINPMembers(t *testing.T) {
	path := writeINPX(t, map[string][]string{"collection.info": {"metadata"}})

	_, err := catalog.Load(path, t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "no .inp members")
}

/*
TestLoad_MissingFile checks the error for a nonexistent INPX path.
*/
func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "absent.inpx"), t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "cannot open INPX")
}
