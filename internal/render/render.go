// Package render turns aggregated records into markdown text for agents.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

const dateLayout = "2006-01-02 15:04"

// metricLabels names the default metrics for humans
var metricLabels = map[string]string{
	"ncloc":                    "Lines of Code",
	"lines":                    "Lines",
	"complexity":               "Cyclomatic Complexity",
	"cognitive_complexity":     "Cognitive Complexity",
	"coverage":                 "Coverage (%)",
	"duplicated_lines_density": "Duplicated Lines (%)",
	"bugs":                     "Bugs",
	"vulnerabilities":          "Vulnerabilities",
	"code_smells":              "Code Smells",
	"security_hotspots":        "Security Hotspots",
	"reliability_rating":       "Reliability Rating",
	"security_rating":          "Security Rating",
	"sqale_rating":             "Maintainability Rating",
	"sqale_index":              "Technical Debt",
}

// markdownTable renders rows as a markdown table
func markdownTable(header []string, rows [][]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return buf.String()
}

// Projects renders a page of projects
func Projects(page *domain.ProjectPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Projects (%d of %d)\n\n", len(page.Projects), page.Paging.Total)
	if len(page.Projects) == 0 {
		b.WriteString("No projects found.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(page.Projects))
	for _, p := range page.Projects {
		rows = append(rows, []string{
			p.Key,
			p.Name,
			string(p.Visibility),
			formatTime(p.LastAnalysisDate),
		})
	}
	b.WriteString(markdownTable([]string{"Key", "Name", "Visibility", "Last Analysis"}, rows))
	writePaging(&b, page.Paging)
	return b.String()
}

// Metrics renders the current metrics of a project
func Metrics(set *domain.MetricSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Metrics for %s%s\n\n", set.ProjectKey, qualifier(set.Branch, set.PullRequest))
	if len(set.Measures) == 0 {
		b.WriteString("No metrics available.\n")
		return b.String()
	}

	keys := make([]string, 0, len(set.Measures))
	for k := range set.Measures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{metricLabel(k), MeasureText(k, set.Measures[k])})
	}
	b.WriteString(markdownTable([]string{"Metric", "Value"}, rows))
	return b.String()
}

// MeasureText formats a measure the way the quality service displays it.
// Ratings become letters and debt becomes a duration.
func MeasureText(metric string, v domain.MeasureValue) string {
	if !v.Numeric {
		return v.Raw
	}
	switch {
	case strings.HasSuffix(metric, "_rating"):
		return derive.RatingLetter(v.Number)
	case metric == "sqale_index":
		return derive.FormatDuration(int(v.Number))
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// Issues renders an issue report
func Issues(r *domain.IssueReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Issues for %s\n\n", r.ProjectKey)
	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Showing %d of %d issues. Total remediation effort: %s\n\n", len(r.Issues), r.Paging.Total, r.TotalEffort)
	for _, f := range r.Facets {
		parts := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			parts = append(parts, fmt.Sprintf("%s: %d", v.Value, v.Count))
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", f.Property, strings.Join(parts, ", "))
	}
	if len(r.Facets) > 0 {
		b.WriteString("\n")
	}

	rows := make([][]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		rows = append(rows, []string{
			string(is.Severity),
			string(is.Type),
			string(is.Status),
			location(is.Component, is.Line),
			is.Message,
			is.Effort,
		})
	}
	b.WriteString(markdownTable([]string{"Severity", "Type", "Status", "Location", "Message", "Effort"}, rows))
	writePaging(&b, r.Paging)
	return b.String()
}

// QualityGate renders a quality gate status
func QualityGate(g *domain.QualityGate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quality Gate for %s\n\n**Status:** %s\n\n", g.ProjectKey, g.Status)
	if len(g.Conditions) == 0 {
		b.WriteString("No conditions.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		rows = append(rows, []string{metricLabel(c.Metric), c.Comparator, c.ErrorThreshold, c.ActualValue, string(c.Status)})
	}
	b.WriteString(markdownTable([]string{"Metric", "Comparator", "Threshold", "Actual", "Status"}, rows))
	return b.String()
}

// AnalysisHistory renders the analyses of a project
func AnalysisHistory(h *domain.AnalysisHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis History for %s%s\n\n", h.ProjectKey, qualifier(h.Branch, ""))
	if h.Latest == nil {
		b.WriteString("No analyses found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Latest analysis: %s", h.Latest.Date.Format(dateLayout))
	if h.Latest.ProjectVersion != "" {
		fmt.Fprintf(&b, " (version %s)", h.Latest.ProjectVersion)
	}
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(h.Analyses))
	for _, a := range h.Analyses {
		events := make([]string, 0, len(a.Events))
		for _, e := range a.Events {
			events = append(events, fmt.Sprintf("%s: %s", e.Category, e.Name))
		}
		rows = append(rows, []string{
			a.Date.Format(dateLayout),
			a.ProjectVersion,
			shortRevision(a.Revision),
			a.DetectedCI,
			strings.Join(events, "; "),
		})
	}
	b.WriteString(markdownTable([]string{"Date", "Version", "Revision", "CI", "Events"}, rows))
	writePaging(&b, h.Paging)
	return b.String()
}

// MetricTrends renders a trend report
func MetricTrends(r *domain.TrendReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Metric Trends for %s%s\n\n", r.ProjectKey, qualifier(r.Branch, ""))
	if len(r.Trends) == 0 {
		b.WriteString("No history available.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Trends))
	for _, t := range r.Trends {
		rows = append(rows, []string{
			metricLabel(t.Metric),
			formatNumber(t.Previous),
			formatNumber(t.Latest),
			string(t.Summary.Direction),
			t.Summary.Change,
			strconv.Itoa(t.Points),
		})
	}
	b.WriteString(markdownTable([]string{"Metric", "Previous", "Latest", "Direction", "Change", "Points"}, rows))
	return b.String()
}

// RepositoryInfo renders repository information. Absent blocks are reported as
// unavailable rather than omitted silently.
func RepositoryInfo(info *domain.RepositoryInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Repository Information for %s\n\n**Project:** %s\n\n", info.ProjectKey, info.ProjectName)

	b.WriteString("## Repository\n\n")
	if r := info.Repository; r != nil {
		fmt.Fprintf(&b, "- **URL:** %s\n- **Provider:** %s\n", r.URL, r.Provider)
		if r.Organization != "" {
			fmt.Fprintf(&b, "- **Organization:** %s\n", r.Organization)
		}
		if r.Name != "" {
			fmt.Fprintf(&b, "- **Name:** %s\n", r.Name)
		}
		if r.MainBranch != "" {
			fmt.Fprintf(&b, "- **Main branch:** %s\n", r.MainBranch)
		}
		if len(r.Branches) > 0 {
			fmt.Fprintf(&b, "- **Branches:** %s\n", strings.Join(r.Branches, ", "))
		}
	} else {
		b.WriteString("No SCM link configured.\n")
	}

	b.WriteString("\n## Links\n\n")
	if l := info.Links; l != nil {
		writeOptional(&b, "Homepage", l.Homepage)
		writeOptional(&b, "CI", l.CI)
		writeOptional(&b, "Issue tracker", l.IssueTracker)
		writeOptional(&b, "SCM", l.SCM)
	} else {
		b.WriteString("Not available.\n")
	}

	b.WriteString("\n## ALM Integration\n\n")
	if a := info.ALM; a != nil {
		fmt.Fprintf(&b, "- **Provider:** %s\n", a.Provider)
		writeOptional(&b, "URL", a.URL)
		writeOptional(&b, "Repository", a.Identifier)
	} else {
		b.WriteString("Not available.\n")
	}
	return b.String()
}

// SecurityReport renders vulnerabilities and hotspots
func SecurityReport(r *domain.SecurityReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Security Analysis for %s%s\n\n", r.ProjectKey, qualifier(r.Branch, ""))

	fmt.Fprintf(&b, "## Vulnerabilities (%d)\n\n", r.VulnerabilityTotal)
	if len(r.Vulnerabilities) == 0 {
		b.WriteString("No vulnerabilities found.\n")
	} else {
		counts := make([]string, 0, len(domain.Severities))
		for _, s := range domain.Severities {
			if n := r.BySeverity[s]; n > 0 {
				counts = append(counts, fmt.Sprintf("%s: %d", s, n))
			}
		}
		fmt.Fprintf(&b, "By severity: %s\n\n", strings.Join(counts, ", "))

		rows := make([][]string, 0, len(r.Vulnerabilities))
		for _, v := range r.Vulnerabilities {
			rows = append(rows, []string{string(v.Severity), location(v.Component, v.Line), v.Message, v.Rule})
		}
		b.WriteString(markdownTable([]string{"Severity", "Location", "Message", "Rule"}, rows))
	}

	b.WriteString("\n## Security Hotspots\n\n")
	h := r.Hotspots
	switch {
	case h == nil:
		b.WriteString("Not available.\n")
	case len(h.Hotspots) == 0:
		b.WriteString("No security hotspots found.\n")
	default:
		probs := make([]string, 0, len(h.ByProbability))
		for _, p := range []string{"HIGH", "MEDIUM", "LOW"} {
			if n := h.ByProbability[p]; n > 0 {
				probs = append(probs, fmt.Sprintf("%s: %d", p, n))
			}
		}
		fmt.Fprintf(&b, "Total: %d. By probability: %s\n\n", h.Total, strings.Join(probs, ", "))

		rows := make([][]string, 0, len(h.Hotspots))
		for _, s := range h.Hotspots {
			rows = append(rows, []string{s.VulnerabilityProbability, s.SecurityCategory, location(s.Component, s.Line), s.Message, s.Status})
		}
		b.WriteString(markdownTable([]string{"Probability", "Category", "Location", "Message", "Status"}, rows))
	}
	return b.String()
}

// ProjectHealth renders a health overview
func ProjectHealth(h *domain.ProjectHealth) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Project Health for %s%s\n\n", h.ProjectKey, qualifier(h.Branch, ""))

	if h.QualityGate != nil {
		fmt.Fprintf(&b, "**Quality Gate:** %s\n", h.QualityGate.Status)
	} else {
		b.WriteString("**Quality Gate:** not available\n")
	}
	if h.TechnicalDebt != "" {
		fmt.Fprintf(&b, "**Technical Debt:** %s\n", h.TechnicalDebt)
	}
	if a := h.LatestAnalysis; a != nil {
		fmt.Fprintf(&b, "**Last Analysis:** %s\n", a.Date.Format(dateLayout))
	}
	b.WriteString("\n")

	if h.Metrics != nil && len(h.Metrics.Measures) > 0 {
		rows := make([][]string, 0, 6)
		for _, k := range []string{"reliability_rating", "security_rating", "sqale_rating", "coverage", "duplicated_lines_density", "ncloc"} {
			if v, ok := h.Metrics.Value(k); ok {
				rows = append(rows, []string{metricLabel(k), MeasureText(k, v)})
			}
		}
		if len(rows) > 0 {
			b.WriteString(markdownTable([]string{"Metric", "Value"}, rows))
		}
	}
	return b.String()
}

func metricLabel(key string) string {
	if l, ok := metricLabels[key]; ok {
		return l
	}
	return key
}

func qualifier(branch, pullRequest string) string {
	switch {
	case pullRequest != "":
		return fmt.Sprintf(" (pull request %s)", pullRequest)
	case branch != "":
		return fmt.Sprintf(" (branch %s)", branch)
	}
	return ""
}

func location(component string, line *int) string {
	if line == nil {
		return component
	}
	return fmt.Sprintf("%s:%d", component, *line)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return t.Format(dateLayout)
}

func formatNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func shortRevision(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}

func writeOptional(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "- **%s:** %s\n", label, value)
	}
}

func writePaging(b *strings.Builder, p domain.Paging) {
	if p.Total > 0 && p.PageSize > 0 {
		pages := (p.Total + p.PageSize - 1) / p.PageSize
		fmt.Fprintf(b, "\nPage %d of %d\n", p.PageIndex, pages)
	}
}
