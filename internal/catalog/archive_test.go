package catalog_test

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkruglov/chitalka/internal/catalog"
	"github.com/pkruglov/chitalka/internal/platform/apperr"
)

// writeBookArchive creates booksDir/lib.rus.ec/<name> with the given
// members and returns booksDir.
func writeBookArchive(t *testing.T, name string, members map[string][]byte) string {
	t.Helper()

	booksDir := t.TempDir()
	archiveDir := filepath.Join(booksDir, "lib.rus.ec")
	require.NoError(t, os.MkdirAll(archiveDir, 0o755))

	f, err := os.Create(filepath.Join(archiveDir, name))
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for memberName, payload := range members {
		member, err := w.Create(memberName)
		require.NoError(t, err)
		_, err = member.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return booksDir
}

func zipBytes(t *testing.T, members map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, payload := range members {
		member, err := w.Create(name)
		require.NoError(t, err)
		_, err = member.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

/*
TestExtract verifies payload extraction and the sanitized delivery
filename.
*/
func TestExtract(t *testing.T) {
	payload := []byte("<FictionBook/>")
	booksDir := writeBookArchive(t, "fb2-000001-100000.zip", map[string][]byte{
		"12345.fb2": payload,
	})

	inpxPath := writeINPX(t, map[string][]string{
		"fb2-000001-100000.inp": {
			inpRow("Автор", "sf", "Метро 2033: начало", "", "", "12345", "14", "12345", "fb2"),
		},
	})
	c, err := catalog.Load(inpxPath, booksDir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	book, ok := c.FindByLibID("12345")
	require.True(t, ok)

	data, filename, err := c.Extract(book)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Colon and spaces collapse to underscores.
	assert.Equal(t, "Метро_2033_начало.fb2", filename)
}

/*
TestExtract_MemberMissing checks the error when the indexed file is not in
its archive.
*/
func TestExtract_MemberMissing(t *testing.T) {
	booksDir := writeBookArchive(t, "books.zip", map[string][]byte{
		"other.fb2": []byte("x"),
	})

	inpxPath := writeINPX(t, map[string][]string{
		"books.inp": {inpRow("Автор", "sf", "Книга", "", "", "999", "1", "999", "fb2")},
	})
	c, err := catalog.Load(inpxPath, booksDir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	book, _ := c.FindByLibID("999")
	_, _, err = c.Extract(book)
	assert.ErrorContains(t, err, "not found in")
}

/*
TestExtract_ArchiveMissing checks the error when the archive file itself is
absent from the mirror.
*/
func TestExtract_ArchiveMissing(t *testing.T) {
	inpxPath := writeINPX(t, map[string][]string{
		"gone.inp": {inpRow("Автор", "sf", "Книга", "", "", "7", "1", "7", "fb2")},
	})
	c, err := catalog.Load(inpxPath, t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	book, _ := c.FindByLibID("7")
	_, _, err = c.Extract(book)
	assert.ErrorContains(t, err, "cannot open archive")
}

/*
TestExtract_LongTitle verifies the delivery filename is truncated without
splitting a UTF-8 sequence.
*/
func TestExtract_LongTitle(t *testing.T) {
	title := strings.Repeat("о", 120)
	booksDir := writeBookArchive(t, "books.zip", map[string][]byte{
		"42.fb2": []byte("x"),
	})

	inpxPath := writeINPX(t, map[string][]string{
		"books.inp": {inpRow("Автор", "sf", title, "", "", "42", "1", "42", "fb2")},
	})
	c, err := catalog.Load(inpxPath, booksDir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	book, _ := c.FindByLibID("42")
	_, filename, err := c.Extract(book)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(filename), 100)
	assert.True(t, strings.HasSuffix(filename, ".fb2"))
	assert.True(t, utf8ValidString(filename))
}

func utf8ValidString(s string) bool {
	return strings.ToValidUTF8(s, "") == s
}

/*
TestUnwrapFB2 covers the passthrough, zip-member, broken-archive, and
no-member cases.
*/
func TestUnwrapFB2(t *testing.T) {
	fb2Payload := []byte("<FictionBook/>")

	t.Run("plain_fb2_passthrough", func(t *testing.T) {
		data, err := catalog.UnwrapFB2(fb2Payload, "book.fb2")
		require.NoError(t, err)
		assert.Equal(t, fb2Payload, data)
	})

	t.Run("fb2_zip_member", func(t *testing.T) {
		archive := zipBytes(t, map[string][]byte{"book.fb2": fb2Payload})

		data, err := catalog.UnwrapFB2(archive, "book.fb2.zip")
		require.NoError(t, err)
		assert.Equal(t, fb2Payload, data)
	})

	t.Run("uppercase_member_name", func(t *testing.T) {
		archive := zipBytes(t, map[string][]byte{"BOOK.FB2": fb2Payload})

		data, err := catalog.UnwrapFB2(archive, "book.zip")
		require.NoError(t, err)
		assert.Equal(t, fb2Payload, data)
	})

	t.Run("broken_zip", func(t *testing.T) {
		_, err := catalog.UnwrapFB2([]byte("definitely not a zip"), "book.zip")
		assert.True(t, apperr.IsCode(err, "MALFORMED_ARCHIVE"))
	})

	t.Run("no_fb2_member", func(t *testing.T) {
		archive := zipBytes(t, map[string][]byte{"readme.txt": []byte("hi")})

		_, err := catalog.UnwrapFB2(archive, "book.zip")
		assert.True(t, apperr.IsCode(err, "UNREADABLE_DOCUMENT"))
	})
}
