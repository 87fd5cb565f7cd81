// Package exporters serializes scraped books into per-book markdown files.
package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/kindle-notebook/internal/entities"
	"github.com/mrlokans/kindle-notebook/internal/export"
)

// MarkdownExporter writes one markdown file per book into the notes
// directory, fully overwriting any previous export of the same book. No
// merge, no append: the scrape result is the file.
type MarkdownExporter struct {
	OutputDir string
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{OutputDir: outputDir}
}

// Render produces the markdown document for a book. Deterministic: the same
// book and highlights in the same order always yield identical bytes.
//
// Layout: a title heading and author line, then each entry as a quoted
// highlight, an optional note line and a location/page line, separated by
// horizontal rules.
func Render(book entities.Book, highlights []entities.Highlight) string {
	lines := []string{
		fmt.Sprintf("# %s", book.Title),
		fmt.Sprintf("**Author:** %s", book.Author),
		"",
		"---",
		"",
	}

	for _, hl := range highlights {
		if hl.Text != "" {
			lines = append(lines, fmt.Sprintf("> %s", hl.Text), "")
		}

		if hl.Note != "" {
			lines = append(lines, fmt.Sprintf("**Note:** %s", hl.Note))
		}

		var meta []string
		if hl.Location != "" {
			meta = append(meta, fmt.Sprintf("**Location:** %s", hl.Location))
		}
		if hl.Page != "" {
			meta = append(meta, fmt.Sprintf("**Page:** %s", hl.Page))
		}
		if len(meta) > 0 {
			lines = append(lines, strings.Join(meta, " | "))
		}

		lines = append(lines, "", "---", "")
	}

	return strings.Join(lines, "\n")
}

// Write renders the book and overwrites its output file, returning the path.
func (e *MarkdownExporter) Write(book entities.Book, highlights []entities.Highlight) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.OutputDir, export.FileStem(book)+".md")
	if err := os.WriteFile(path, []byte(Render(book, highlights)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
