package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaqflair/timegrid/internal/service"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var artifact, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to an artifact's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service.OpenSession(cmd.Context(), app.Documents, artifact)
			if err != nil {
				return err
			}
			phase, err := s.AddPhase(name)
			if err != nil {
				return err
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %q (%s)\n", phase.Name, phase.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "rm <phase-id>",
		Short: "Remove a phase and every item in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service.OpenSession(cmd.Context(), app.Documents, artifact)
			if err != nil {
				return err
			}
			if s.Document().Phase(args[0]) == nil {
				return fmt.Errorf("phase %q not found", args[0])
			}
			s.RemovePhase(args[0])
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}
