// Package fb2 parses FictionBook 2 documents into a flat reading stream.
//
// The parser extracts book metadata (title, authors, sequence) and walks the
// body sections into paragraph-delimited MarkdownV2 text. Inline strong and
// emphasis elements survive as emphasis markers; everything else is escaped.
package fb2

import (
	"strconv"
	"strings"

	"github.com/pkruglov/chitalka/pkg/markdown"
)

// Sentinel values for absent metadata fields.
const (
	UntitledBook  = "Без названия"
	UnknownAuthor = "Неизвестный автор"
	NoSeries      = "Нет серии"
	Unnumbered    = -1
)

// Document is the normalized result of parsing one FB2 file.
type Document struct {
	Title        string
	Author       string
	Series       string
	SeriesNumber int

	// Body is the flat reading stream: paragraphs separated by a blank
	// line, already MarkdownV2-escaped. An empty Body means the file had
	// no readable content even if the metadata parsed.
	Body string
}

// Parse decodes raw FB2 bytes into a [Document].
//
// It returns an error only when the XML itself cannot be decoded. A
// well-formed document with missing metadata comes back with the sentinel
// values; a well-formed document with no body text comes back with an empty
// Body, which callers treat as unreadable.
func Parse(raw []byte) (*Document, error) {
	root, err := buildTree(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title:        UntitledBook,
		Author:       UnknownAuthor,
		Series:       NoSeries,
		SeriesNumber: Unnumbered,
	}

	if title := root.findFirst("book-title"); title != nil {
		if text := strings.TrimSpace(title.text); text != "" {
			doc.Title = text
		}
	}

	if author := joinAuthors(root.findAll("author")); author != "" {
		doc.Author = author
	}

	if sequence := root.findFirst("sequence"); sequence != nil {
		if name := sequence.attr("name"); name != "" {
			doc.Series = name
		}
		doc.SeriesNumber = parseSeriesNumber(sequence.attr("number"))
	}

	doc.Body = formatBody(root)

	return doc, nil
}

// joinAuthors builds the comma-joined "first last (nickname)" author string.
func joinAuthors(authors []*node) string {
	var names []string
	for _, author := range authors {
		var parts []string
		for _, child := range author.children {
			text := strings.TrimSpace(child.text)
			if text == "" {
				continue
			}
			switch child.local {
			case "first-name", "last-name":
				parts = append(parts, text)
			case "nickname":
				parts = append(parts, "("+text+")")
			}
		}
		if len(parts) > 0 {
			names = append(names, strings.Join(parts, " "))
		}
	}
	return strings.Join(names, ", ")
}

// formatBody walks every body's sections depth-first and renders their
// direct children into the flat paragraph stream.
func formatBody(root *node) string {
	var b strings.Builder
	for _, body := range root.findAll("body") {
		for _, section := range body.findAll("section") {
			for _, elem := range section.children {
				switch elem.local {
				case "p", "empty-line":
					b.WriteString("\n\n")
					b.WriteString(strings.TrimSpace(formatParagraph(elem)))
				case "subtitle", "h1":
					if text := strings.TrimSpace(elem.text); text != "" {
						b.WriteString("\n\n")
						b.WriteString(markdown.Bold(markdown.Escape(text)))
					}
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// formatParagraph renders one paragraph-like element, preserving inline
// strong/emphasis children as emphasis markers and escaping everything else.
func formatParagraph(elem *node) string {
	var b strings.Builder
	b.WriteString(markdown.Escape(elem.text))

	for _, child := range elem.children {
		switch child.local {
		case "strong", "b":
			b.WriteString(markdown.Bold(markdown.Escape(child.text)))
		case "emphasis", "i":
			b.WriteString(markdown.Emphasis(markdown.Escape(child.text)))
		default:
			b.WriteString(markdown.Escape(child.text))
		}
		b.WriteString(markdown.Escape(child.tail))
	}

	return b.String()
}

// parseSeriesNumber parses a sequence number attribute, falling back to the
// sentinel on anything non-numeric.
func parseSeriesNumber(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Unnumbered
	}
	return n
}
