package formatter

import (
	"fmt"
	"strings"

	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
)

// FormatTimeline renders one page of a timeline view as text. Pixel
// geometry collapses to one column per day so the layout survives a
// terminal. With plain set, no color escapes are emitted.
func FormatTimeline(view contract.TimelineView, plain bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s  weeks %d–%d  (anchor %s)",
		view.ArtifactID, view.Page.FromWeek, view.Page.ToWeek, view.AnchorDate)
	if plain {
		b.WriteString(strings.ToUpper(title) + "\n")
	} else {
		b.WriteString(Header(title) + "\n")
	}

	days := view.Page.Days()
	b.WriteString(weekRuler(view.Page) + "\n")

	for _, phase := range view.Phases {
		if plain {
			b.WriteString(phase.Name + "\n")
		} else {
			b.WriteString(Bold(phase.Name) + "\n")
		}
		if phase.LaneCount == 0 && len(phase.Bars) == 0 {
			line := "  (collapsed)"
			if !plain {
				line = "  " + Dim("(collapsed)")
			}
			b.WriteString(line + "\n")
			continue
		}

		for lane := 0; lane < phase.LaneCount; lane++ {
			track := []rune(strings.Repeat("·", days))
			var labels []string
			for _, bar := range phase.Bars {
				if bar.Lane != lane {
					continue
				}
				drawBar(track, bar, view.DayWidth, days)
				labels = append(labels, barLabel(bar, plain))
			}
			b.WriteString("  " + string(track) + "  " + strings.Join(labels, ", ") + "\n")
		}
	}

	if len(view.Edges) > 0 {
		b.WriteString(fmt.Sprintf("%d dependency edges\n", len(view.Edges)))
	}
	return b.String()
}

// drawBar paints one bar onto a day-column track.
func drawBar(track []rune, bar contract.BarView, dayWidth, days int) {
	if dayWidth <= 0 {
		return
	}
	startCol := bar.Left / dayWidth
	widthCols := bar.Width / dayWidth
	if widthCols < 1 {
		widthCols = 1
	}
	glyph := '█'
	if bar.Type == domain.TypeMilestone {
		glyph = '◆'
		widthCols = 1
	}
	for c := startCol; c < startCol+widthCols && c < days; c++ {
		if c >= 0 {
			track[c] = glyph
		}
	}
}

func barLabel(bar contract.BarView, plain bool) string {
	if plain {
		return fmt.Sprintf("%s [%s]", bar.Name, bar.Status)
	}
	return fmt.Sprintf("%s %s", bar.Name, StatusIndicator(bar.Status))
}

// weekRuler marks each week boundary along the page.
func weekRuler(page contract.WeekRange) string {
	var b strings.Builder
	b.WriteString("  ")
	for w := page.FromWeek; w <= page.ToWeek; w++ {
		b.WriteString(fmt.Sprintf("%-7s", fmt.Sprintf("W%d", w)))
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatIssues renders validation issues, blocking ones first.
func FormatIssues(issues []document.Issue, plain bool) string {
	if len(issues) == 0 {
		return "No issues found.\n"
	}
	var b strings.Builder
	for _, pass := range []bool{true, false} {
		for _, is := range issues {
			if is.Blocking != pass {
				continue
			}
			marker := "warn"
			if is.Blocking {
				marker = "BLOCKING"
			}
			line := fmt.Sprintf("%-8s %s", marker, is.String())
			if !plain && is.Blocking {
				line = StyleRed.Render(line)
			} else if !plain {
				line = StyleYellow.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// FormatSummary renders a one-line document summary.
func FormatSummary(doc domain.ScheduleDocument) string {
	return fmt.Sprintf("anchor %s, %d phases, %d items", doc.AnchorDate, len(doc.Phases), len(doc.Items))
}
