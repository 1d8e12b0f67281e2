package fb2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkruglov/chitalka/internal/fb2"
)

const sampleBook = `<?xml version="1.0" encoding="UTF-8"?>
<FictionBook xmlns="http://www.gribuser.ru/xml/fictionbook/2.0">
  <description>
    <title-info>
      <author>
        <first-name>Дмитрий</first-name>
        <last-name>Глуховский</last-name>
      </author>
      <book-title>Метро 2033</book-title>
      <sequence name="Метро" number="1"/>
    </title-info>
  </description>
  <body>
    <section>
      <subtitle>Глава 1</subtitle>
      <p>Станция жила своей жизнью.</p>
      <p>Он <strong>должен</strong> был идти <emphasis>дальше</emphasis> один.</p>
    </section>
  </body>
</FictionBook>`

/*
TestParse_Metadata verifies extraction of title, author, and sequence.
*/
func TestParse_Metadata(t *testing.T) {
	doc, err := fb2.Parse([]byte(sampleBook))
	require.NoError(t, err)

	assert.Equal(t, "Метро 2033", doc.Title)
	assert.Equal(t, "Дмитрий Глуховский", doc.Author)
	assert.Equal(t, "Метро", doc.Series)
	assert.Equal(t, 1, doc.SeriesNumber)
}

/*
TestParse_Body checks that the body walk produces the paragraph stream with
escaped text and inline markup preserved as emphasis markers.
*/
func TestParse_Body(t *testing.T) {
	doc, err := fb2.Parse([]byte(sampleBook))
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "**Глава 1**")
	assert.Contains(t, doc.Body, "Станция жила своей жизнью\\.")
	assert.Contains(t, doc.Body, "Он **должен** был идти *дальше* один\\.")

	// Paragraphs are blank-line separated with no leading whitespace.
	assert.False(t, doc.Body[0] == '\n')
	assert.Contains(t, doc.Body, "\n\n")
}

/*
TestParse_MissingMetadata verifies that absent fields come back as the
documented sentinel values instead of errors.
*/
func TestParse_MissingMetadata(t *testing.T) {
	raw := `<FictionBook><body><section><p>Текст.</p></section></body></FictionBook>`

	doc, err := fb2.Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, fb2.UntitledBook, doc.Title)
	assert.Equal(t, fb2.UnknownAuthor, doc.Author)
	assert.Equal(t, fb2.NoSeries, doc.Series)
	assert.Equal(t, fb2.Unnumbered, doc.SeriesNumber)
	assert.Equal(t, "Текст\\.", doc.Body)
}

/*
TestParse_MultipleAuthors checks comma joining and nickname formatting.
*/
func TestParse_MultipleAuthors(t *testing.T) {
	raw := `<FictionBook>
	  <description><title-info>
	    <author><first-name>Аркадий</first-name><last-name>Стругацкий</last-name></author>
	    <author><first-name>Борис</first-name><last-name>Стругацкий</last-name><nickname>БНС</nickname></author>
	  </title-info></description>
	  <body><section><p>Пролог.</p></section></body>
	</FictionBook>`

	doc, err := fb2.Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Аркадий Стругацкий, Борис Стругацкий (БНС)", doc.Author)
}

/*
TestParse_NonNumericSequence verifies the unnumbered sentinel for series
numbers that do not parse as integers.
*/
func TestParse_NonNumericSequence(t *testing.T) {
	raw := `<FictionBook>
	  <description><title-info>
	    <book-title>Книга</book-title>
	    <sequence name="Серия" number="VII"/>
	  </title-info></description>
	  <body><section><p>Текст.</p></section></body>
	</FictionBook>`

	doc, err := fb2.Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Серия", doc.Series)
	assert.Equal(t, fb2.Unnumbered, doc.SeriesNumber)
}

/*
TestParse_EmptyBody confirms that a metadata-only document yields an empty
reading stream rather than an error.
*/
func TestParse_EmptyBody(t *testing.T) {
	raw := `<FictionBook><description><title-info><book-title>Пустая</book-title></title-info></description></FictionBook>`

	doc, err := fb2.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, doc.Body)
}

/*
TestParse_Malformed checks that undecodable XML is reported as an error.
*/
func TestParse_Malformed(t *testing.T) {
	_, err := fb2.Parse([]byte("not xml at all"))
	assert.Error(t, err)

	_, err = fb2.Parse([]byte(""))
	assert.Error(t, err)
}

/*
TestParse_Windows1251 verifies that a declared legacy encoding is honored.
*/
func TestParse_Windows1251(t *testing.T) {
	// "Тест." in windows-1251 bytes inside a declared-encoding document.
	raw := append([]byte(`<?xml version="1.0" encoding="windows-1251"?><FictionBook><body><section><p>`),
		0xD2, 0xE5, 0xF1, 0xF2, '.')
	raw = append(raw, []byte(`</p></section></body></FictionBook>`)...)

	doc, err := fb2.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Тест\\.", doc.Body)
}
