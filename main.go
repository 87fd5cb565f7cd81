package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/kindle-notebook/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "login":
		runCommand(cli.NewLoginCommand(), args)

	case "export":
		runCommand(cli.NewExportCommand(), args)

	case "history":
		runCommand(cli.NewHistoryCommand(), args)

	case "version":
		fmt.Printf("kindle-notebook %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
}

func runCommand(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  login    Interactive Amazon sign-in, saves the session for export runs\n")
	fmt.Fprintf(os.Stderr, "  export   Scrape Kindle highlights to per-book markdown files\n")
	fmt.Fprintf(os.Stderr, "  history  Show recent export runs\n")
	fmt.Fprintf(os.Stderr, "  version  Print version information\n")
	fmt.Fprintf(os.Stderr, "\nRun login once (and again whenever the session expires), then invoke\n")
	fmt.Fprintf(os.Stderr, "export periodically, e.g. from cron. Export exits non-zero on any failure.\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
