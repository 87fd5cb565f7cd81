package history

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/kindle-notebook/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_history_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ExportRun{}, &entities.BookExport{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_StartRun(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.StartRun(entities.ExportModeIncremental, 12)
	require.NoError(t, err)

	assert.NotZero(t, run.ID)
	assert.Equal(t, entities.ExportModeIncremental, run.Mode)
	assert.Equal(t, entities.RunStatusRunning, run.Status)
	assert.Equal(t, 12, run.BooksFound)
	assert.Nil(t, run.FinishedAt)
}

func TestRepository_CompleteRun(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.StartRun(entities.ExportModeForced, 3)
	require.NoError(t, err)

	run.Exported = 2
	run.Empty = 1
	require.NoError(t, repo.CompleteRun(run, true, ""))

	runs, err := repo.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, entities.RunStatusCompleted, runs[0].Status)
	assert.Equal(t, 2, runs[0].Exported)
	assert.Equal(t, 1, runs[0].Empty)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestRepository_CompleteRun_Failed(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.StartRun(entities.ExportModeIncremental, 5)
	require.NoError(t, err)

	require.NoError(t, repo.CompleteRun(run, false, `annotations did not load for "Dune"`))

	runs, err := repo.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, entities.RunStatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "Dune")
}

func TestRepository_RecordBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.StartRun(entities.ExportModeIncremental, 1)
	require.NoError(t, err)

	err = repo.RecordBook(run, entities.BookExport{
		ASIN:       "B000FA675C",
		Title:      "Dune",
		Author:     "Frank Herbert",
		Highlights: 42,
		OutputFile: "/notes/Dune - Frank Herbert.md",
		Status:     entities.BookExportStatusExported,
	})
	require.NoError(t, err)

	runs, err := repo.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Books, 1)

	book := runs[0].Books[0]
	assert.Equal(t, run.ID, book.RunID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 42, book.Highlights)
	assert.Equal(t, entities.BookExportStatusExported, book.Status)
}

func TestRepository_RecentRuns_OrderAndLimit(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		run, err := repo.StartRun(entities.ExportModeIncremental, i)
		require.NoError(t, err)
		require.NoError(t, repo.CompleteRun(run, true, ""))
	}

	runs, err := repo.RecentRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, 4, runs[0].BooksFound)
	assert.Equal(t, 3, runs[1].BooksFound)
	assert.Equal(t, 2, runs[2].BooksFound)
}
