package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaqflair/timegrid/internal/cli/formatter"
)

func newArtifactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Manage schedule artifacts",
	}

	cmd.AddCommand(
		newArtifactListCmd(app),
		newArtifactInitCmd(app),
		newArtifactRemoveCmd(app),
	)

	return cmd
}

func newArtifactListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Documents.ListArtifacts(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No artifacts stored.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newArtifactInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init <artifact>",
		Short: "Create a starter schedule for an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.Documents.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Artifact %s ready: %d phases, %d items (revision %d)\n",
				loaded.ArtifactID, len(loaded.Doc.Phases), len(loaded.Doc.Items), loaded.Revision)
			return nil
		},
	}
}

func newArtifactRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <artifact>",
		Short: "Delete an artifact's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete %q without --force", args[0])
			}
			if err := app.Documents.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.MaybeDim(app.interactive(), "Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")
	return cmd
}
