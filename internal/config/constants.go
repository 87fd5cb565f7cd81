package config

const (
	// DefaultNotebookURL is the Kindle notebook page every run starts from.
	DefaultNotebookURL = "https://read.amazon.com/notebook"

	// DefaultSessionPath is where the login command saves the captured
	// browser session for later headless reuse.
	DefaultSessionPath = "./state/kindle_session.json"

	// DefaultNotesDir receives one markdown file per exported book.
	DefaultNotesDir = "./notes"

	// DefaultHistoryDBPath is the SQLite file recording past export runs.
	DefaultHistoryDBPath = "./state/history.db"
)
