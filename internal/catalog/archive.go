package catalog

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkruglov/chitalka/internal/platform/apperr"
)

// archiveSubdir is where the mirror keeps its book archives under BooksDir.
const archiveSubdir = "lib.rus.ec"

// maxFilenameLength bounds the outgoing document filename, extension
// included.
const maxFilenameLength = 100

// forbiddenFilenameChars matches character runs that are unsafe in
// filenames across platforms; each run collapses to one underscore.
var forbiddenFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\s,;%&№]+`)

// Extract reads the book's payload out of its zip archive, in memory.
// It returns the raw bytes and the sanitized filename to deliver it under.
func (c *Catalog) Extract(book *Book) ([]byte, string, error) {
	archivePath := filepath.Join(c.booksDir, archiveSubdir, book.Archive)
	memberName := book.File + "." + book.Ext

	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: cannot open archive %s: %w", book.Archive, err)
	}
	defer archive.Close()

	member, err := archive.Open(memberName)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: %s not found in %s: %w", memberName, book.Archive, err)
	}
	defer member.Close()

	data, err := io.ReadAll(member)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: extracting %s: %w", memberName, err)
	}

	return data, deliveryFilename(book), nil
}

// UnwrapFB2 returns the FB2 payload of an uploaded or extracted file. A
// plain .fb2 passes through; a .zip (including .fb2.zip) is opened in
// memory and its first .fb2 member returned.
func UnwrapFB2(data []byte, filename string) ([]byte, error) {
	lower := strings.ToLower(filename)

	if !strings.HasSuffix(lower, ".zip") {
		return data, nil
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperr.MalformedArchive(err)
	}

	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".fb2") {
			continue
		}
		reader, err := member.Open()
		if err != nil {
			return nil, apperr.MalformedArchive(err)
		}
		defer reader.Close()

		payload, err := io.ReadAll(reader)
		if err != nil {
			return nil, apperr.MalformedArchive(err)
		}
		return payload, nil
	}

	// An archive without an FB2 member reads the same as an empty payload.
	return nil, apperr.UnreadableDocument(errors.New("no .fb2 member in archive"))
}

// deliveryFilename builds a human-readable filename from the book title,
// truncated so the full name stays within filesystem-safe length.
func deliveryFilename(book *Book) string {
	title := strings.Trim(forbiddenFilenameChars.ReplaceAllString(book.Title, "_"), "_")

	maxTitle := maxFilenameLength - len("."+book.Ext)
	if len(title) > maxTitle {
		truncated := []byte(title)[:maxTitle]
		// Avoid cutting a UTF-8 sequence in half.
		title = strings.ToValidUTF8(string(truncated), "")
	}
	if title == "" {
		title = book.File
	}

	return title + "." + book.Ext
}
