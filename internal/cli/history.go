package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/kindle-notebook/internal/config"
	"github.com/mrlokans/kindle-notebook/internal/database"
	"github.com/mrlokans/kindle-notebook/internal/database/history"
	"github.com/mrlokans/kindle-notebook/internal/entities"
)

// HistoryCommand prints recent export runs from the history database.
type HistoryCommand struct {
	DatabasePath string
	Limit        int
	Verbose      bool
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Export.HistoryDBPath, "Path to the run history database")
	fs.IntVar(&cmd.Limit, "limit", 10, "Number of recent runs to show")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Also list per-book outcomes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show recent export runs and their outcomes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := history.NewRepository(db.DB).RecentRuns(cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No export runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-11s %-9s found=%d exported=%d skipped=%d empty=%d\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Mode, run.Status,
			run.BooksFound, run.Exported, run.Skipped, run.Empty)
		if run.Error != "" {
			fmt.Printf("    error: %s\n", run.Error)
		}
		if cmd.Verbose {
			for _, book := range run.Books {
				line := fmt.Sprintf("    %-8s %s by %s", book.Status, book.Title, book.Author)
				if book.Status == entities.BookExportStatusExported {
					line += fmt.Sprintf(" (%d highlights → %s)", book.Highlights, filepath.Base(book.OutputFile))
				}
				fmt.Println(line)
			}
		}
	}

	return nil
}
