// Package catalog loads and searches the INPX index of a local Librusec
// mirror and extracts book payloads from its zip archives.
//
// The INPX file is a zip of .inp members; each member line describes one
// book as 0x04-separated fields. The whole catalog is held in memory and is
// read-only after Load, so it is safe for concurrent use.
package catalog

import (
	"archive/zip"
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// fieldSeparator delimits columns inside an .inp line.
const fieldSeparator = "\x04"

// inp column order, fixed by the INPX format.
const (
	colAuthor = iota
	colGenre
	colTitle
	colSeries
	colSeriesNo
	colFile
	colSize
	colLibID
	colDeleted
	colExt
	colDate
	colLang
	colRating
	colKeywords
	columnCount
)

// Book is one catalog entry.
type Book struct {
	Author   string
	Genre    string
	Title    string
	Series   string
	SeriesNo string
	File     string
	Size     int64
	LibID    string
	Deleted  string
	Ext      string
	Date     string
	Lang     string

	// Archive is the zip file holding this book's payload, derived from
	// the .inp member name.
	Archive string
}

// Catalog is the in-memory book index.
type Catalog struct {
	booksDir string
	books    []*Book
	byLibID  map[string]*Book
}

// Load reads every .inp member of the INPX archive into memory.
//
// Lines with too few fields are skipped rather than failing the whole
// load; mirrors accumulate malformed rows over the years.
func Load(inpxPath, booksDir string, logger *slog.Logger) (*Catalog, error) {
	archive, err := zip.OpenReader(inpxPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot open INPX %s: %w", inpxPath, err)
	}
	defer archive.Close()

	catalog := &Catalog{
		booksDir: booksDir,
		byLibID:  make(map[string]*Book),
	}

	inpMembers := 0
	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".inp") {
			continue
		}
		inpMembers++
		if err := catalog.loadMember(member); err != nil {
			return nil, err
		}
	}

	if inpMembers == 0 {
		return nil, fmt.Errorf("catalog: no .inp members in %s", inpxPath)
	}

	logger.Info("catalog_loaded",
		slog.String("inpx", inpxPath),
		slog.Int("inp_files", inpMembers),
		slog.Int("books", len(catalog.books)),
	)
	return catalog, nil
}

func (c *Catalog) loadMember(member *zip.File) error {
	reader, err := member.Open()
	if err != nil {
		return fmt.Errorf("catalog: cannot open member %s: %w", member.Name, err)
	}
	defer reader.Close()

	archiveName := strings.TrimSuffix(member.Name, ".inp") + ".zip"

	scanner := bufio.NewScanner(reader)
	// Keyword-heavy rows can be long.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Split(strings.TrimSpace(scanner.Text()), fieldSeparator)
		if len(fields) < columnCount {
			continue
		}

		book := &Book{
			// Colons are author/genre sub-separators in some INPX
			// generations; strip them the way the original index did.
			Author:   strings.ReplaceAll(fields[colAuthor], ":", ""),
			Genre:    strings.ReplaceAll(fields[colGenre], ":", ""),
			Title:    fields[colTitle],
			Series:   fields[colSeries],
			SeriesNo: fields[colSeriesNo],
			File:     fields[colFile],
			LibID:    fields[colLibID],
			Deleted:  fields[colDeleted],
			Ext:      fields[colExt],
			Date:     fields[colDate],
			Lang:     fields[colLang],
			Archive:  archiveName,
		}
		if size, err := strconv.ParseInt(fields[colSize], 10, 64); err == nil {
			book.Size = size
		}

		c.books = append(c.books, book)
		c.byLibID[book.LibID] = book
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("catalog: reading member %s: %w", member.Name, err)
	}
	return nil
}

// Len returns the number of indexed books.
func (c *Catalog) Len() int { return len(c.books) }

// FindByLibID resolves a library id to its catalog entry.
func (c *Catalog) FindByLibID(libID string) (*Book, bool) {
	book, ok := c.byLibID[libID]
	return book, ok
}
