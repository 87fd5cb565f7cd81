package entities

import (
	"time"
)

type ExportMode string

const (
	ExportModeIncremental ExportMode = "incremental"
	ExportModeForced      ExportMode = "forced"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ExportRun records a single invocation of the export command.
type ExportRun struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Mode       ExportMode `gorm:"size:20" json:"mode"`
	Status     RunStatus  `gorm:"size:20" json:"status"`
	BooksFound int        `json:"books_found"`
	Exported   int        `json:"exported"`
	Skipped    int        `json:"skipped"`
	Empty      int        `json:"empty"`
	Error      string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	Books []BookExport `gorm:"foreignKey:RunID" json:"books,omitempty"`
}

func (ExportRun) TableName() string {
	return "export_runs"
}

type BookExportStatus string

const (
	BookExportStatusExported BookExportStatus = "exported"
	BookExportStatusEmpty    BookExportStatus = "empty"
	BookExportStatusFailed   BookExportStatus = "failed"
)

// BookExport records the outcome of scraping one book within a run. Books
// skipped by the incremental check are only counted on the run itself.
type BookExport struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	RunID      uint             `gorm:"index" json:"run_id"`
	ASIN       string           `gorm:"size:32" json:"asin,omitempty"`
	Title      string           `gorm:"size:512" json:"title"`
	Author     string           `gorm:"size:512" json:"author"`
	Highlights int              `json:"highlights"`
	OutputFile string           `gorm:"size:1024" json:"output_file,omitempty"`
	Status     BookExportStatus `gorm:"size:20" json:"status"`
}

func (BookExport) TableName() string {
	return "book_exports"
}
