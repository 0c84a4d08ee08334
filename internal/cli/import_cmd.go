package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var artifact, start, finish string

	cmd := &cobra.Command{
		Use:   "import <wbs-file>",
		Short: "Append a work breakdown structure to an artifact's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Imports.ImportFile(cmd.Context(), artifact, args[0], start, finish)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			if res.Changed {
				fmt.Fprintf(cmd.OutOrStdout(), "  phases +%d, items +%d, dependencies +%d\n",
					res.PhasesAdded, res.ItemsAdded, res.DependenciesAdded)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD, defaults to the anchor)")
	cmd.Flags().StringVar(&finish, "finish", "", "Project finish date used to clamp due dates")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}
