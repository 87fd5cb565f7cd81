package notebook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrlokans/kindle-notebook/internal/entities"
)

// DOM selectors for read.amazon.com/notebook. Amazon changes these rarely,
// but when an export run starts failing this is the first place to look.
const (
	LibrarySelector     = "#kp-notebook-library .kp-notebook-library-each-book"
	AnnotationsSelector = "#kp-notebook-annotations"

	annotationRows = "#kp-notebook-annotations > .a-row.a-spacing-base"
)

var (
	byPrefix = regexp.MustCompile(`(?i)^By:\s*`)

	// Annotation headers look like "Yellow highlight | Page: 56, Location: 1234"
	// or "Note | Location: 1234". Page and Location are both optional.
	locationPattern = regexp.MustCompile(`(?i)Location:\s*(\S+)`)
	pagePattern     = regexp.MustCompile(`(?i)Page:\s*(\S+)`)
	colorPattern    = regexp.MustCompile(`(?i)^(\w+)\s+highlight`)
)

// ParseLibrary extracts the book list from the notebook library sidebar, in
// the order the sidebar shows them.
func ParseLibrary(html string) ([]entities.Book, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse library page: %w", err)
	}

	var books []entities.Book
	doc.Find(LibrarySelector).Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h2").First().Text())
		if title == "" {
			title = "Unknown Title"
		}

		author := strings.TrimSpace(sel.Find("p").First().Text())
		author = strings.TrimSpace(byPrefix.ReplaceAllString(author, ""))
		if author == "" {
			author = "Unknown Author"
		}

		books = append(books, entities.Book{
			ASIN:   sel.AttrOr("id", ""),
			Title:  title,
			Author: author,
			Index:  i,
		})
	})

	return books, nil
}

// ParseAnnotations extracts the highlights and notes for the currently
// selected book, preserving source order. Rows with neither highlight text
// nor a note (bookmarks, spacer rows) are dropped.
func ParseAnnotations(html string) ([]entities.Highlight, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse annotations page: %w", err)
	}

	var highlights []entities.Highlight
	doc.Find(annotationRows).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Find("#highlight").First().Text())
		note := strings.TrimSpace(sel.Find("#note").First().Text())

		header := strings.TrimSpace(sel.Find("#annotationHighlightHeader").First().Text())
		if header == "" {
			header = strings.TrimSpace(sel.Find("#annotationNoteHeader").First().Text())
		}

		if text == "" && note == "" {
			return
		}

		highlights = append(highlights, entities.Highlight{
			Text:     text,
			Note:     note,
			Location: headerField(locationPattern, header),
			Page:     headerField(pagePattern, header),
			Color:    headerColor(header),
		})
	})

	return highlights, nil
}

func headerField(re *regexp.Regexp, header string) string {
	m := re.FindStringSubmatch(header)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSuffix(m[1], ",")
}

func headerColor(header string) string {
	m := colorPattern.FindStringSubmatch(header)
	if len(m) < 2 {
		return ""
	}
	return strings.ToLower(m[1])
}
