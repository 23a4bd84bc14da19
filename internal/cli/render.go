package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"toggl-cli/internal/api"
	"toggl-cli/internal/domain"
	"toggl-cli/internal/tracking"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90E2"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Renderer writes command results in the configured output format.
type Renderer struct {
	out        io.Writer
	format     string
	timeFormat string
}

// NewRenderer creates a renderer for the given format (table, json or raw).
func NewRenderer(out io.Writer, format, timeFormat string) *Renderer {
	if timeFormat == "" {
		timeFormat = "15:04"
	}
	return &Renderer{out: out, format: format, timeFormat: timeFormat}
}

// Message prints a plain informational line regardless of format.
func (r *Renderer) Message(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Entry renders a single time entry, as produced by start, stop, current
// and continue.
func (r *Renderer) Entry(entry *domain.TimeEntry, projectName string, now time.Time) error {
	switch r.format {
	case "json":
		return r.renderJSON(entry)
	case "raw":
		fmt.Fprintf(r.out, "%d\t%s\t%s\t%s\t%s\n",
			entry.ID, entry.Description, projectName,
			entry.Start.Format(time.RFC3339), r.stopColumn(entry))
		return nil
	default:
		status := dimStyle.Render("stopped")
		if entry.IsRunning() {
			status = runningStyle.Render("running")
		}
		fmt.Fprintf(r.out, "%s  %s\n", headerStyle.Render(entry.Description), status)
		if projectName != "" {
			fmt.Fprintf(r.out, "  project:  %s\n", projectName)
		}
		fmt.Fprintf(r.out, "  started:  %s\n", entry.Start.Local().Format("2006-01-02 "+r.timeFormat))
		fmt.Fprintf(r.out, "  elapsed:  %s\n", tracking.FormatDuration(entry.Elapsed(now)))
		return nil
	}
}

// Entries renders a range listing.
func (r *Renderer) Entries(listing *api.Listing, now time.Time) error {
	switch r.format {
	case "json":
		return r.renderJSON(listing.Entries)
	case "raw":
		for _, entry := range listing.Entries {
			fmt.Fprintf(r.out, "%d\t%s\t%s\t%s\t%s\t%s\n",
				entry.ID, entry.Description, entry.ProjectName,
				entry.Start.Format(time.RFC3339), r.stopColumn(&entry.TimeEntry),
				tracking.FormatDuration(entry.Elapsed(now)))
		}
		return nil
	default:
		if len(listing.Entries) == 0 {
			fmt.Fprintf(r.out, "No entries in %s\n", listing.Range)
			return nil
		}

		fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("%-20s %-28s %-16s %-9s %-9s %s",
			"DATE", "DESCRIPTION", "PROJECT", "START", "STOP", "DURATION")))

		var total, dayTotal time.Duration
		currentDay := ""
		flushDay := func() {
			if currentDay != "" {
				fmt.Fprintf(r.out, "%s\n", dimStyle.Render(fmt.Sprintf("%-20s %s", "", tracking.FormatDuration(dayTotal))))
			}
			dayTotal = 0
		}
		for _, entry := range listing.Entries {
			start := entry.Start.Local()
			day := start.Format("2006-01-02")
			if day != currentDay {
				flushDay()
				currentDay = day
			}
			stop := "-"
			elapsed := entry.Elapsed(now)
			duration := tracking.FormatDuration(elapsed)
			if entry.Stop != nil {
				stop = entry.Stop.Local().Format(r.timeFormat)
			} else {
				duration = runningStyle.Render(duration)
			}
			total += elapsed
			dayTotal += elapsed
			fmt.Fprintf(r.out, "%-20s %-28s %-16s %-9s %-9s %s\n",
				start.Format("2006-01-02 Mon"),
				truncate(entry.Description, 28),
				truncate(entry.ProjectName, 16),
				start.Format(r.timeFormat),
				stop,
				duration)
		}
		flushDay()

		fmt.Fprintf(r.out, "\n%s %s\n", dimStyle.Render("total:"), tracking.FormatDuration(total))
		return nil
	}
}

// Report renders the aggregated report for a range.
func (r *Renderer) Report(view *api.ReportView) error {
	switch r.format {
	case "json":
		return r.renderJSON(view.Summary)
	case "raw":
		for _, day := range sortedKeys(view.Summary.ByDay) {
			fmt.Fprintf(r.out, "day\t%s\t%s\n", day, tracking.FormatDuration(view.Summary.ByDay[day]))
		}
		for _, id := range sortedProjectIDs(view.Summary.ByProject) {
			fmt.Fprintf(r.out, "project\t%s\t%s\n", r.projectLabel(id, view.ProjectNames), tracking.FormatDuration(view.Summary.ByProject[id]))
		}
		fmt.Fprintf(r.out, "total\t\t%s\n", tracking.FormatDuration(view.Summary.Total))
		for _, v := range view.Summary.Violations {
			fmt.Fprintf(r.out, "violation\t%s\t%s\t%s\n", v.Day.Format("2006-01-02"), v.Kind, v.Detail)
		}
		return nil
	default:
		fmt.Fprintln(r.out, headerStyle.Render("Report for "+view.Range.String()))

		fmt.Fprintln(r.out, headerStyle.Render("\nBy day"))
		for _, day := range sortedKeys(view.Summary.ByDay) {
			fmt.Fprintf(r.out, "  %-16s %s\n", day, tracking.FormatDuration(view.Summary.ByDay[day]))
		}

		fmt.Fprintln(r.out, headerStyle.Render("\nBy project"))
		for _, id := range sortedProjectIDs(view.Summary.ByProject) {
			fmt.Fprintf(r.out, "  %-16s %s\n", truncate(r.projectLabel(id, view.ProjectNames), 16), tracking.FormatDuration(view.Summary.ByProject[id]))
		}

		fmt.Fprintf(r.out, "\n%s %s\n", dimStyle.Render("total:"), tracking.FormatDuration(view.Summary.Total))

		if len(view.Summary.Running) > 0 {
			fmt.Fprintf(r.out, "%s\n", runningStyle.Render(fmt.Sprintf("%d entry(ies) still running", len(view.Summary.Running))))
		}

		if len(view.Summary.Violations) > 0 {
			fmt.Fprintln(r.out, headerStyle.Render("\nWarnings"))
			for _, v := range view.Summary.Violations {
				fmt.Fprintf(r.out, "  %s\n", violationStyle.Render(fmt.Sprintf("%s  %-20s %s",
					v.Day.Format("2006-01-02 Mon"), v.Kind, v.Detail)))
			}
		}
		return nil
	}
}

// MissingDays renders the weekdays without any entry.
func (r *Renderer) MissingDays(days []time.Time) error {
	switch r.format {
	case "json":
		formatted := make([]string, 0, len(days))
		for _, day := range days {
			formatted = append(formatted, day.Format("2006-01-02"))
		}
		return r.renderJSON(formatted)
	default:
		if len(days) == 0 {
			fmt.Fprintln(r.out, "No missing workdays")
			return nil
		}
		for _, day := range days {
			fmt.Fprintln(r.out, violationStyle.Render(day.Format("2006-01-02 Mon")))
		}
		return nil
	}
}

// Projects renders the project list.
func (r *Renderer) Projects(projects []*domain.Project) error {
	switch r.format {
	case "json":
		return r.renderJSON(projects)
	case "raw":
		for _, p := range projects {
			fmt.Fprintf(r.out, "%d\t%s\t%t\n", p.ID, p.Name, p.Active)
		}
		return nil
	default:
		fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("%-12s %-28s %s", "ID", "NAME", "ACTIVE")))
		for _, p := range projects {
			fmt.Fprintf(r.out, "%-12d %-28s %t\n", p.ID, truncate(p.Name, 28), p.Active)
		}
		return nil
	}
}

// Clients renders the client list.
func (r *Renderer) Clients(clients []*domain.Client) error {
	switch r.format {
	case "json":
		return r.renderJSON(clients)
	case "raw":
		for _, c := range clients {
			fmt.Fprintf(r.out, "%d\t%s\t%t\n", c.ID, c.Name, c.Archived)
		}
		return nil
	default:
		fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("%-12s %-28s %s", "ID", "NAME", "ARCHIVED")))
		for _, c := range clients {
			fmt.Fprintf(r.out, "%-12d %-28s %t\n", c.ID, truncate(c.Name, 28), c.Archived)
		}
		return nil
	}
}

// Workspaces renders the workspace list.
func (r *Renderer) Workspaces(workspaces []*domain.Workspace) error {
	switch r.format {
	case "json":
		return r.renderJSON(workspaces)
	case "raw":
		for _, w := range workspaces {
			fmt.Fprintf(r.out, "%d\t%s\n", w.ID, w.Name)
		}
		return nil
	default:
		fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("%-12s %s", "ID", "NAME")))
		for _, w := range workspaces {
			fmt.Fprintf(r.out, "%-12d %s\n", w.ID, w.Name)
		}
		return nil
	}
}

func (r *Renderer) renderJSON(v interface{}) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *Renderer) stopColumn(entry *domain.TimeEntry) string {
	if entry.Stop == nil {
		return "running"
	}
	return entry.Stop.Format(time.RFC3339)
}

func (r *Renderer) projectLabel(id int64, names map[int64]string) string {
	if id == 0 {
		return "(no project)"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func sortedKeys(m map[string]time.Duration) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedProjectIDs(m map[int64]time.Duration) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
