// Package history provides database operations for export run records.
//
// # Usage
//
//	repo := history.NewRepository(db)
//	run, err := repo.StartRun(entities.ExportModeIncremental, len(books))
package history

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/kindle-notebook/internal/entities"
)

// Repository handles all export run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StartRun records the beginning of an export run.
func (r *Repository) StartRun(mode entities.ExportMode, booksFound int) (*entities.ExportRun, error) {
	run := &entities.ExportRun{
		Mode:       mode,
		Status:     entities.RunStatusRunning,
		BooksFound: booksFound,
		StartedAt:  time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// RecordBook attaches the outcome of scraping one book to a run.
func (r *Repository) RecordBook(run *entities.ExportRun, record entities.BookExport) error {
	record.RunID = run.ID
	return r.db.Create(&record).Error
}

// CompleteRun marks a run as finished and persists its final counters.
// The caller is expected to have updated the counters on run beforehand.
func (r *Repository) CompleteRun(run *entities.ExportRun, succeeded bool, errMsg string) error {
	now := time.Now()
	run.FinishedAt = &now
	run.Status = entities.RunStatusCompleted
	if !succeeded {
		run.Status = entities.RunStatusFailed
	}
	run.Error = errMsg
	return r.db.Save(run).Error
}

// RecentRuns returns the most recent runs, newest first, with their
// per-book records preloaded.
func (r *Repository) RecentRuns(limit int) ([]entities.ExportRun, error) {
	var runs []entities.ExportRun
	err := r.db.Preload("Books").
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
