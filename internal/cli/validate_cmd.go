package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaqflair/timegrid/internal/cli/formatter"
	"github.com/shaqflair/timegrid/internal/document"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <artifact>",
		Short: "Report schedule issues for an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.Documents.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			issues := app.Documents.Validate(loaded.Doc)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatIssues(issues, !app.interactive()))
			if document.HasBlocking(issues) {
				return fmt.Errorf("schedule has blocking issues")
			}
			return nil
		},
	}
}
