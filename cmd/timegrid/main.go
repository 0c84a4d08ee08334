package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/shaqflair/timegrid/internal/cli"
	"github.com/shaqflair/timegrid/internal/db"
	"github.com/shaqflair/timegrid/internal/repository"
	"github.com/shaqflair/timegrid/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.timegrid/timegrid.db
	dbPath := os.Getenv("TIMEGRID_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timegrid", "timegrid.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	docRepo := repository.NewSQLiteDocumentRepo(database)
	docs := service.NewDocumentService(docRepo)

	app := &cli.App{
		Documents: docs,
		Imports:   service.NewImportService(docs),
		Timeline:  service.NewTimelineService(),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
