package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaqflair/timegrid/internal/cli/formatter"
	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/timeline"
)

func newShowCmd(app *App) *cobra.Command {
	var (
		fromWeek, toWeek int
		dayWidth         int
		types            []string
		query            string
		collapse         []string
		asJSON           bool
	)

	cmd := &cobra.Command{
		Use:   "show <artifact>",
		Short: "Render one page of an artifact's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toWeek < fromWeek {
				return fmt.Errorf("--to-week must not be before --from-week")
			}

			loaded, err := app.Documents.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			filter := timeline.Filter{Query: query}
			for _, t := range types {
				if !domain.ValidItemTypes[t] {
					return fmt.Errorf("unknown item type %q", t)
				}
				filter.Types = append(filter.Types, domain.ItemType(t))
			}
			if len(collapse) > 0 {
				filter.CollapsedPhases = make(map[string]bool, len(collapse))
				for _, id := range collapse {
					filter.CollapsedPhases[id] = true
				}
			}

			page := contract.WeekRange{FromWeek: fromWeek, ToWeek: toWeek}
			view := app.Timeline.BuildView(loaded.Doc, loaded.ArtifactID, page, dayWidth, filter)

			if asJSON {
				out, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding view: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(view, !app.interactive()))
			return nil
		},
	}

	cmd.Flags().IntVar(&fromWeek, "from-week", 0, "First visible week (relative to the anchor)")
	cmd.Flags().IntVar(&toWeek, "to-week", 5, "Last visible week")
	cmd.Flags().IntVar(&dayWidth, "day-width", 0, "Pixels per day (0 = default)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Only show items of these types")
	cmd.Flags().StringVar(&query, "query", "", "Only show items whose name contains this text")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Phase IDs to collapse")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the view contract as JSON")

	return cmd
}
