package entities

// Book is one book visible in the Kindle notebook library sidebar.
type Book struct {
	// ASIN is the stable Amazon identifier taken from the library element id.
	// Sideloaded documents may not have one.
	ASIN   string
	Title  string
	Author string
	// Index is the book's position in the sidebar, used as a click target
	// fallback when the ASIN is missing.
	Index int
}

// Highlight is a single highlight or note scraped from a book's notebook
// page. Location and Page stay strings: the page renders locations with
// thousands separators ("1,204") and pages can be roman numerals.
type Highlight struct {
	Text     string
	Note     string
	Location string
	Page     string
	Color    string
}
