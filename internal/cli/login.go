package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/kindle-notebook/internal/browser"
	"github.com/mrlokans/kindle-notebook/internal/config"
	"github.com/mrlokans/kindle-notebook/internal/session"
)

// LoginCommand handles the one-time interactive Amazon login that captures
// the session state used by headless export runs.
type LoginCommand struct {
	SessionPath string
	BrowserPath string
	NotebookURL string

	// Input defaults to stdin; tests override it.
	Input io.Reader
}

func NewLoginCommand() *LoginCommand {
	return &LoginCommand{Input: os.Stdin}
}

func (cmd *LoginCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("login", flag.ExitOnError)

	fs.StringVar(&cmd.SessionPath, "session", cfg.Session.Path, "Path to write the captured session state")
	fs.StringVar(&cmd.BrowserPath, "browser", cfg.Browser.Path, "Path to an alternate browser binary (default: system Chrome)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s login [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Open a visible browser for a manual Amazon sign-in and save the resulting\n")
		fmt.Fprintf(os.Stderr, "session state for headless export runs.\n\n")
		fmt.Fprintf(os.Stderr, "Amazon sign-in may involve 2FA or a CAPTCHA, which is why this step is\n")
		fmt.Fprintf(os.Stderr, "manual. Re-run it whenever a session expires and exports start failing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s login\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s login -browser /usr/bin/google-chrome\n", os.Args[0])
	}

	cmd.NotebookURL = cfg.Notebook.URL

	return fs.Parse(args)
}

func (cmd *LoginCommand) Run() error {
	fmt.Println("Kindle Login")
	fmt.Println("============")

	b, err := browser.Launch(context.Background(), browser.Options{
		Headless: false,
		ExecPath: cmd.BrowserPath,
	})
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Navigate(cmd.NotebookURL); err != nil {
		return err
	}

	fmt.Println("\nPlease log into your Amazon account in the browser window.")
	fmt.Println("After you see your Kindle notebook page, press Enter here to save the session.")
	fmt.Print("\nPress Enter when logged in and the notebook page is visible... ")

	if _, err := bufio.NewReader(cmd.Input).ReadString('\n'); err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	cookies, err := b.Cookies()
	if err != nil {
		return err
	}

	store := session.NewStore(cmd.SessionPath)
	if err := store.Save(&session.State{CapturedAt: time.Now(), Cookies: cookies}); err != nil {
		return err
	}

	fmt.Printf("\nSession saved to %s\n", cmd.SessionPath)
	return nil
}
