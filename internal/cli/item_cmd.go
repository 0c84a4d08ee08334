package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/service"
	"github.com/shaqflair/timegrid/internal/timeline"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage schedule items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemRemoveCmd(app),
		newItemSetCmd(app),
		newItemShiftCmd(app),
		newItemDupCmd(app),
		newItemDepsCmd(app),
	)

	return cmd
}

// openArtifactSession is the shared prologue of every item mutation.
func openArtifactSession(cmd *cobra.Command, app *App, artifact string) (*service.EditorSession, error) {
	return service.OpenSession(cmd.Context(), app.Documents, artifact)
}

func newItemAddCmd(app *App) *cobra.Command {
	var artifact, phaseID, itemType, name, start, end, status, notes string
	var deps []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemType != "" && !domain.ValidItemTypes[itemType] {
				return fmt.Errorf("unknown item type %q", itemType)
			}
			if status != "" && !domain.ValidItemStatuses[status] {
				return fmt.Errorf("unknown status %q", status)
			}

			s, err := openArtifactSession(cmd, app, artifact)
			if err != nil {
				return err
			}
			if s.Document().Phase(phaseID) == nil {
				return fmt.Errorf("phase %q not found", phaseID)
			}

			item, err := s.AddItem(domain.ScheduleItem{
				PhaseID:      phaseID,
				Type:         domain.ItemType(itemType),
				Name:         name,
				Start:        start,
				End:          end,
				Status:       domain.ItemStatus(status),
				Notes:        notes,
				Dependencies: deps,
			})
			if err != nil {
				return err
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", item.Type, item.Name, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().StringVar(&phaseID, "phase", "", "Phase ID")
	cmd.Flags().StringVar(&itemType, "type", "", "Item type (task, milestone, deliverable)")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, ignored for milestones)")
	cmd.Flags().StringVar(&status, "status", "", "Status (on_track, at_risk, delayed, done)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&deps, "dep", nil, "Predecessor item IDs")
	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openArtifactSession(cmd, app, artifact)
			if err != nil {
				return err
			}
			if s.Document().Item(args[0]) == nil {
				return fmt.Errorf("item %q not found", args[0])
			}
			s.RemoveItem(args[0])
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

func newItemSetCmd(app *App) *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "set <item-id>",
		Short: "Update fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			s, err := openArtifactSession(cmd, app, artifact)
			if err != nil {
				return err
			}
			if !s.PatchItem(args[0], patch) {
				return fmt.Errorf("item %q not found", args[0])
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().String("name", "", "Item name")
	cmd.Flags().String("phase", "", "Phase ID")
	cmd.Flags().String("type", "", "Item type")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "Status")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().StringSlice("dep", nil, "Predecessor item IDs (replaces the set)")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

func newItemDepsCmd(app *App) *cobra.Command {
	var artifact, query string

	cmd := &cobra.Command{
		Use:   "deps <item-id>",
		Short: "List candidate predecessors for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.Documents.Load(cmd.Context(), artifact)
			if err != nil {
				return err
			}
			if loaded.Doc.Item(args[0]) == nil {
				return fmt.Errorf("item %q not found", args[0])
			}
			for _, it := range timeline.SearchDependencyCandidates(loaded.Doc, args[0], query) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", it.ID, it.Name, it.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().StringVar(&query, "query", "", "Filter candidates by name")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

// patchFromFlags builds a partial item update from whichever flags the
// caller actually set.
func patchFromFlags(flags *pflag.FlagSet) (document.ItemPatch, error) {
	patch := document.ItemPatch{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	patch.Name = str("name")
	patch.PhaseID = str("phase")
	patch.Start = str("start")
	patch.End = str("end")
	patch.Notes = str("notes")

	if v := str("type"); v != nil {
		if !domain.ValidItemTypes[*v] {
			return patch, fmt.Errorf("unknown item type %q", *v)
		}
		t := domain.ItemType(*v)
		patch.Type = &t
	}
	if v := str("status"); v != nil {
		if !domain.ValidItemStatuses[*v] {
			return patch, fmt.Errorf("unknown status %q", *v)
		}
		st := domain.ItemStatus(*v)
		patch.Status = &st
	}
	if flags.Changed("dep") {
		v, _ := flags.GetStringSlice("dep")
		patch.Dependencies = &v
	}
	return patch, nil
}

func newItemShiftCmd(app *App) *cobra.Command {
	var artifact string
	var weeks int

	cmd := &cobra.Command{
		Use:   "shift <item-id>",
		Short: "Shift an item by whole weeks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if weeks == 0 {
				return fmt.Errorf("--weeks must be non-zero")
			}
			s, err := openArtifactSession(cmd, app, artifact)
			if err != nil {
				return err
			}
			if s.Document().Item(args[0]) == nil {
				return fmt.Errorf("item %q not found", args[0])
			}
			s.ShiftItemWeeks(args[0], weeks)
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			it := s.Document().Item(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Shifted item %s to start %s\n", args[0], it.Start)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Weeks to shift (negative moves earlier)")
	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("weeks")

	return cmd
}

func newItemDupCmd(app *App) *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "dup <item-id>",
		Short: "Duplicate an item within its phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openArtifactSession(cmd, app, artifact)
			if err != nil {
				return err
			}
			copied := s.DuplicateItem(args[0])
			if copied == nil {
				return fmt.Errorf("item %q not found", args[0])
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated as %q (%s)\n", copied.Name, copied.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact ID")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}
