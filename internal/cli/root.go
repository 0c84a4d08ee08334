package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaqflair/timegrid/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Documents service.DocumentService
	Imports   service.ImportService
	Timeline  service.TimelineService

	// IsInteractive reports whether stdin is a terminal; non-interactive
	// invocations get plain, color-free output.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timegrid" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timegrid",
		Short: "Schedule timeline modeler",
		Long:  "timegrid maintains week-gridded schedule documents and lays them out as paged timeline views.",
	}

	root.AddCommand(
		newArtifactCmd(app),
		newShowCmd(app),
		newPhaseCmd(app),
		newItemCmd(app),
		newImportCmd(app),
		newValidateCmd(app),
	)

	return root
}
