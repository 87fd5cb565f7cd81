// Package export decides which books need scraping on a given run: every
// book without an existing output file, or all of them when forced.
package export

import (
	"os"
	"strings"

	"github.com/mrlokans/kindle-notebook/internal/entities"
	"github.com/mrlokans/kindle-notebook/internal/utils"
)

// FileStem derives the output filename (without extension) for a book.
// Two books sanitizing to the same stem are indistinguishable from an
// already-exported duplicate: the later export silently overwrites the
// earlier file.
func FileStem(book entities.Book) string {
	return utils.SanitizeFilename(book.Title + " - " + book.Author)
}

// ExistingStems returns the stems of markdown files already present in the
// notes directory. A missing directory means nothing has been exported yet.
func ExistingStems(dir string) (map[string]bool, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	stems := make(map[string]bool)
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		stems[strings.TrimSuffix(name, ".md")] = true
	}
	return stems, nil
}

// Plan computes the work set. Forced mode selects everything regardless of
// what is already on disk.
func Plan(books []entities.Book, existing map[string]bool, force bool) []entities.Book {
	if force {
		return books
	}

	var work []entities.Book
	for _, book := range books {
		if !existing[FileStem(book)] {
			work = append(work, book)
		}
	}
	return work
}
