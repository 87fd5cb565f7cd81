package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/kindle-notebook/internal/browser"
	"github.com/mrlokans/kindle-notebook/internal/config"
	"github.com/mrlokans/kindle-notebook/internal/database"
	"github.com/mrlokans/kindle-notebook/internal/database/history"
	"github.com/mrlokans/kindle-notebook/internal/entities"
	"github.com/mrlokans/kindle-notebook/internal/export"
	"github.com/mrlokans/kindle-notebook/internal/exporters"
	"github.com/mrlokans/kindle-notebook/internal/notebook"
	"github.com/mrlokans/kindle-notebook/internal/session"
)

// ExportCommand scrapes every book in the work set from the Kindle notebook
// page and writes one markdown file per book.
type ExportCommand struct {
	Force        bool
	Verbose      bool
	SessionPath  string
	BrowserPath  string
	OutputDir    string
	DatabasePath string

	notebookCfg notebook.Config
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.BoolVar(&cmd.Force, "force", false, "Re-export all books (default: skip books that already have a file)")
	fs.StringVar(&cmd.SessionPath, "session", cfg.Session.Path, "Path to the saved session state")
	fs.StringVar(&cmd.BrowserPath, "browser", cfg.Browser.Path, "Path to an alternate browser binary (default: system Chrome)")
	fs.StringVar(&cmd.OutputDir, "output", cfg.Export.NotesDir, "Output directory for markdown files")
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Export.HistoryDBPath, "Path to the run history database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export Kindle highlights and notes from read.amazon.com/notebook to\n")
		fmt.Fprintf(os.Stderr, "per-book markdown files. Requires a session saved by the login command.\n\n")
		fmt.Fprintf(os.Stderr, "By default only books without an existing output file are scraped, so the\n")
		fmt.Fprintf(os.Stderr, "command is safe to run periodically from cron. Any scraping failure exits\n")
		fmt.Fprintf(os.Stderr, "non-zero without writing a partial file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Incremental export of new books only:\n")
		fmt.Fprintf(os.Stderr, "  %s export\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Re-export everything:\n")
		fmt.Fprintf(os.Stderr, "  %s export -force\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Use system Chrome and a custom notes directory:\n")
		fmt.Fprintf(os.Stderr, "  %s export -browser /usr/bin/google-chrome -output ~/Obsidian/Kindle\n", os.Args[0])
	}

	cmd.notebookCfg = notebook.Config{
		URL:               cfg.Notebook.URL,
		NavigationTimeout: cfg.Notebook.NavigationTimeout,
		AnnotationTimeout: cfg.Notebook.AnnotationTimeout,
		SettleDelay:       cfg.Notebook.SettleDelay,
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	fmt.Println("📚 Kindle Export")
	fmt.Println("================")

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	state, err := session.NewStore(cmd.SessionPath).Load()
	if err != nil {
		return err
	}
	fmt.Printf("🔐 Using session captured %s\n", state.CapturedAt.Format("2006-01-02 15:04:05"))

	existing, err := export.ExistingStems(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to list existing exports: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := history.NewRepository(db.DB)

	b, err := browser.Launch(context.Background(), browser.Options{
		Headless: true,
		ExecPath: cmd.BrowserPath,
	})
	if err != nil {
		return err
	}
	defer b.Close()

	client := notebook.NewClient(b, cmd.notebookCfg)

	fmt.Println("\n🌐 Navigating to Kindle notebook...")
	if err := client.Open(state); err != nil {
		return err
	}

	books, err := client.Books()
	if err != nil {
		return err
	}
	fmt.Printf("📖 Found %d books\n", len(books))

	mode := entities.ExportModeIncremental
	if cmd.Force {
		mode = entities.ExportModeForced
	}

	run, err := repo.StartRun(mode, len(books))
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}

	workSet := make(map[string]bool)
	for _, book := range export.Plan(books, existing, cmd.Force) {
		workSet[export.FileStem(book)] = true
	}

	exporter := exporters.NewMarkdownExporter(cmd.OutputDir)

	var exported, skipped, empty int
	for _, book := range books {
		stem := export.FileStem(book)
		if !workSet[stem] {
			skipped++
			if cmd.Verbose {
				fmt.Printf("  ⏭️  %s (already exported)\n", book.Title)
			}
			continue
		}

		fmt.Printf("  [%d/%d] %s by %s...\n", book.Index+1, len(books), book.Title, book.Author)

		highlights, err := client.Highlights(book)
		if err != nil {
			cmd.failRun(repo, run, book, exported, skipped, empty, err)
			return err
		}

		if len(highlights) == 0 {
			empty++
			if cmd.Verbose {
				fmt.Println("    no highlights found, skipping")
			}
			if err := repo.RecordBook(run, entities.BookExport{
				ASIN:   book.ASIN,
				Title:  book.Title,
				Author: book.Author,
				Status: entities.BookExportStatusEmpty,
			}); err != nil {
				return fmt.Errorf("failed to record book outcome: %w", err)
			}
			continue
		}

		path, err := exporter.Write(book, highlights)
		if err != nil {
			cmd.failRun(repo, run, book, exported, skipped, empty, err)
			return err
		}
		exported++

		if cmd.Verbose {
			fmt.Printf("    wrote %d highlights to %s\n", len(highlights), filepath.Base(path))
		}

		if err := repo.RecordBook(run, entities.BookExport{
			ASIN:       book.ASIN,
			Title:      book.Title,
			Author:     book.Author,
			Highlights: len(highlights),
			OutputFile: path,
			Status:     entities.BookExportStatusExported,
		}); err != nil {
			return fmt.Errorf("failed to record book outcome: %w", err)
		}
	}

	run.Exported, run.Skipped, run.Empty = exported, skipped, empty
	if err := repo.CompleteRun(run, true, ""); err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}

	fmt.Printf("\n✅ Done: %d exported, %d skipped (already exist), %d without highlights\n",
		exported, skipped, empty)
	return nil
}

// failRun best-effort records the failure before the error propagates and
// the process exits non-zero.
func (cmd *ExportCommand) failRun(repo *history.Repository, run *entities.ExportRun, book entities.Book, exported, skipped, empty int, cause error) {
	_ = repo.RecordBook(run, entities.BookExport{
		ASIN:   book.ASIN,
		Title:  book.Title,
		Author: book.Author,
		Status: entities.BookExportStatusFailed,
	})
	run.Exported, run.Skipped, run.Empty = exported, skipped, empty
	_ = repo.CompleteRun(run, false, cause.Error())
}
