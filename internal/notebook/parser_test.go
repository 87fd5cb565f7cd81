package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kindle-notebook/internal/entities"
)

const libraryHTML = `<html><body>
<div id="kp-notebook-library">
  <div id="B000FA675C" class="kp-notebook-library-each-book">
    <h2>Dune</h2>
    <p>By: Frank Herbert</p>
  </div>
  <div id="B003E8Y7XQ" class="kp-notebook-library-each-book">
    <h2>Foundation</h2>
    <p>Isaac Asimov</p>
  </div>
  <div class="kp-notebook-library-each-book">
    <h2>Sideloaded Notes.pdf</h2>
  </div>
</div>
</body></html>`

func TestParseLibrary(t *testing.T) {
	books, err := ParseLibrary(libraryHTML)
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, entities.Book{
		ASIN:   "B000FA675C",
		Title:  "Dune",
		Author: "Frank Herbert",
		Index:  0,
	}, books[0])

	// Author without the "By:" prefix is kept as-is.
	assert.Equal(t, "Foundation", books[1].Title)
	assert.Equal(t, "Isaac Asimov", books[1].Author)
	assert.Equal(t, 1, books[1].Index)

	// Sideloaded documents have no ASIN and no author element.
	assert.Equal(t, "", books[2].ASIN)
	assert.Equal(t, "Unknown Author", books[2].Author)
	assert.Equal(t, 2, books[2].Index)
}

func TestParseLibrary_Empty(t *testing.T) {
	books, err := ParseLibrary(`<html><body><div id="kp-notebook-library"></div></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, books)
}

const annotationsHTML = `<html><body>
<div id="kp-notebook-annotations">
  <div class="a-row a-spacing-base">
    <span id="annotationHighlightHeader">Yellow highlight | Page: 14, Location: 120</span>
    <span id="highlight">Fear is the mind-killer</span>
  </div>
  <div class="a-row a-spacing-base">
    <span id="annotationHighlightHeader">Blue highlight | Location: 1,204</span>
    <span id="highlight">The mystery of life isn't a problem to solve</span>
    <span id="note">Compare with chapter three</span>
  </div>
  <div class="a-row a-spacing-base">
    <span id="annotationNoteHeader">Note | Page: 88</span>
    <span id="note">A note with no highlight text</span>
  </div>
  <div class="a-row a-spacing-base">
    <span id="annotationHighlightHeader">Orange highlight | Location: 999</span>
  </div>
</div>
</body></html>`

func TestParseAnnotations(t *testing.T) {
	highlights, err := ParseAnnotations(annotationsHTML)
	require.NoError(t, err)
	// The last row carries neither text nor a note and is dropped.
	require.Len(t, highlights, 3)

	assert.Equal(t, entities.Highlight{
		Text:     "Fear is the mind-killer",
		Location: "120",
		Page:     "14",
		Color:    "yellow",
	}, highlights[0])

	// Thousands separator preserved, trailing comma from the header stripped.
	assert.Equal(t, "1,204", highlights[1].Location)
	assert.Equal(t, "", highlights[1].Page)
	assert.Equal(t, "Compare with chapter three", highlights[1].Note)
	assert.Equal(t, "blue", highlights[1].Color)

	// Note-only entry: no highlight text, no color, page only.
	assert.Equal(t, "", highlights[2].Text)
	assert.Equal(t, "A note with no highlight text", highlights[2].Note)
	assert.Equal(t, "88", highlights[2].Page)
	assert.Equal(t, "", highlights[2].Color)
}

func TestParseAnnotations_PreservesOrder(t *testing.T) {
	highlights, err := ParseAnnotations(annotationsHTML)
	require.NoError(t, err)

	var texts []string
	for _, hl := range highlights {
		if hl.Text != "" {
			texts = append(texts, hl.Text)
		}
	}
	assert.Equal(t, []string{
		"Fear is the mind-killer",
		"The mystery of life isn't a problem to solve",
	}, texts)
}

func TestParseAnnotations_EmptyState(t *testing.T) {
	highlights, err := ParseAnnotations(`<html><body><div id="kp-notebook-annotations"></div></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, highlights)
}

func TestBookSelector(t *testing.T) {
	withASIN := entities.Book{ASIN: "B000FA675C", Index: 4}
	assert.Equal(t, "#B000FA675C", bookSelector(withASIN))

	withoutASIN := entities.Book{Index: 4}
	assert.Equal(t,
		"#kp-notebook-library .kp-notebook-library-each-book:nth-of-type(5)",
		bookSelector(withoutASIN))
}

func TestIsSignInURL(t *testing.T) {
	assert.True(t, isSignInURL("https://www.amazon.com/ap/signin?openid..."))
	assert.True(t, isSignInURL("https://www.amazon.com/ap/mfa"))
	assert.False(t, isSignInURL("https://read.amazon.com/notebook"))
}
