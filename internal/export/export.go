// Package export renders discovery results in the supported output
// formats: machine-readable records, a terminal table and a full
// analysis report.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
)

// Format selects an output rendering.
type Format string

const (
	// FormatRecords emits the full result set as JSON.
	FormatRecords Format = "records"

	// FormatTable emits a compact terminal table.
	FormatTable Format = "table"

	// FormatReport emits a human-readable analysis report with a
	// batch summary footer.
	FormatReport Format = "report"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatRecords:
		return FormatRecords, nil
	case FormatTable:
		return FormatTable, nil
	case FormatReport:
		return FormatReport, nil
	default:
		return "", fmt.Errorf("unknown output format %q (records, table, report)", s)
	}
}

// Render writes the results to w in the given format.
func Render(w io.Writer, format Format, query string, results []domain.EnrichedCandidate) error {
	switch format {
	case FormatRecords:
		return renderRecords(w, results)
	case FormatTable:
		return renderTable(w, results)
	case FormatReport:
		return renderReport(w, query, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderRecords emits the results as indented JSON.
func renderRecords(w io.Writer, results []domain.EnrichedCandidate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []domain.EnrichedCandidate{}
	}
	return enc.Encode(results)
}

// renderTable emits a terminal table, one row per candidate. The
// column set is fixed so scripted consumers can rely on it.
func renderTable(w io.Writer, results []domain.EnrichedCandidate) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{
		"Identity", "Title", "Handle", "Kind", "Members",
		"Category", "Verified", "Link", "Found By",
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, Align: text.AlignCenter},
	})

	for _, c := range results {
		tw.AppendRow(table.Row{
			c.Identity,
			c.Title,
			handleOrDash(c.Handle),
			c.Kind,
			c.ParticipantCount,
			c.Category,
			verifiedCell(c.Verified),
			c.Link,
			strings.Join(c.FoundBy, ", "),
		})
	}
	tw.Render()
	return nil
}

// renderReport emits the full analysis report.
func renderReport(w io.Writer, query string, results []domain.EnrichedCandidate) error {
	fmt.Fprintf(w, "Discovery report for %q\n", query)
	fmt.Fprintf(w, "%d communities found\n\n", len(results))

	for i, c := range results {
		fmt.Fprintf(w, "%d. %s", i+1, c.Title)
		if c.Verified {
			fmt.Fprint(w, " [verified]")
		}
		fmt.Fprintln(w)
		if c.Handle != "" {
			fmt.Fprintf(w, "   @%s (%s)\n", c.Handle, c.Link)
		}
		fmt.Fprintf(w, "   %s, %d members, category %s\n", c.Kind, c.ParticipantCount, c.Category)
		if c.Description != "" {
			fmt.Fprintf(w, "   %s\n", c.Description)
		}
		fmt.Fprintf(w, "   found by: %s\n", strings.Join(c.FoundBy, ", "))

		if c.Enriched {
			writeEnrichment(w, c)
		}
		fmt.Fprintln(w)
	}

	writeStats(w, domain.ComputeBatchStats(results))
	return nil
}

// writeEnrichment renders the metrics and assessment block of one
// report entry.
func writeEnrichment(w io.Writer, c domain.EnrichedCandidate) {
	m := c.Metrics
	if m.PostsSampled == 0 {
		fmt.Fprint(w, "   activity: no recent posts sampled\n")
	} else {
		fmt.Fprintf(w, "   activity: %.1f posts/day, %d avg views, %d%% media, %d%% forwards\n",
			m.AvgPostsPerDay, m.AvgViewsPerPost, m.MediaRatio, m.ForwardRatio)
	}

	a := c.Assessment
	if a.Failed() {
		fmt.Fprintf(w, "   assessment unavailable: %s\n", a.Error)
		return
	}
	fmt.Fprintf(w, "   quality %d/10 (%s), commercial %d/10, educational %d/10\n",
		a.QualityScore, a.Verdict, a.CommercialIndex, a.EducationalValue)
	if len(a.Warnings) > 0 {
		fmt.Fprintf(w, "   warnings: %s\n", strings.Join(a.Warnings, "; "))
	}
	if a.Recommendation != domain.AssessmentUndetermined {
		fmt.Fprintf(w, "   recommendation: %s\n", a.Recommendation)
	}
}

// writeStats renders the batch summary footer.
func writeStats(w io.Writer, stats domain.BatchStats) {
	if stats.Analyzed == 0 {
		return
	}
	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  analyzed:      %d of %d\n", stats.Analyzed, stats.Total)
	fmt.Fprintf(w, "  average score: %.1f/10\n", stats.AvgScore)
	fmt.Fprintf(w, "  high quality:  %d\n", stats.HighQuality)
	fmt.Fprintf(w, "  with warnings: %d\n", stats.WithWarnings)
}

func handleOrDash(handle string) string {
	if handle == "" {
		return "-"
	}
	return "@" + handle
}

func verifiedCell(verified bool) string {
	if verified {
		return "yes"
	}
	return ""
}
