package reader

import (
	"fmt"
	"strings"

	"github.com/pkruglov/chitalka/internal/fb2"
	"github.com/pkruglov/chitalka/pkg/markdown"
)

// header selects the first line of a rendered page.
type header int

const (
	headerNone header = iota
	headerBegin
	headerResume
)

// renderPage produces the user-facing page body: title line, optional
// series and author lines, the page text, and the page footer.
//
// Metadata fields are escaped here; the page text was escaped at parse time
// and must not be escaped twice.
func renderPage(session *Session, h header) string {
	var b strings.Builder

	title := markdown.Escape(session.Title)
	switch h {
	case headerBegin:
		b.WriteString(markdown.Bold("Начинаем читать:") + " " + title + "\n")
	case headerResume:
		b.WriteString(markdown.Bold("Продолжаем читать:") + " " + title + "\n")
	default:
		b.WriteString(markdown.Bold(title) + "\n")
	}

	writeMetaLines(&b, session.Series, session.SeriesNumber, session.Author)

	b.WriteString("\n")
	b.WriteString(PageText(session.Content, session.CurrentPage, session.PageSize))
	b.WriteString(fmt.Sprintf("\n\n_Страница %d из %d_", session.CurrentPage+1, session.TotalPages))

	return b.String()
}

// RenderSummary produces the listing entry for one saved book.
func RenderSummary(summary *Summary) string {
	var b strings.Builder
	b.WriteString(markdown.Bold(markdown.Escape(summary.Title)) + "\n")
	writeMetaLines(&b, summary.Series, summary.SeriesNumber, summary.Author)
	b.WriteString(markdown.Line(fmt.Sprintf("Страница %d из %d", summary.CurrentPage+1, summary.TotalPages)))
	return b.String()
}

// writeMetaLines emits the optional series and author lines. Sentinel
// values ("Нет серии", "Неизвестный автор", -1) are suppressed rather than
// shown.
func writeMetaLines(b *strings.Builder, series string, seriesNumber int, author string) {
	if series != "" && series != fb2.NoSeries {
		line := markdown.Escape(series)
		if seriesNumber != fb2.Unnumbered {
			line += fmt.Sprintf(" №%d", seriesNumber)
		}
		b.WriteString(markdown.Line(line) + "\n")
	}

	if author != "" && author != fb2.UnknownAuthor {
		b.WriteString(markdown.Line(markdown.Escape(author)) + "\n")
	}
}
