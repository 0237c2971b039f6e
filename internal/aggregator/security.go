package aggregator

import (
	"context"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// GetSecurityAnalysis merges the vulnerability search with the hotspot search.
// The vulnerability search is required; hotspots are nil when their search
// fails.
func (a *aggregator) GetSecurityAnalysis(ctx context.Context, q SecurityQuery) (*domain.SecurityReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	org := a.organization(q.Organization)

	issues, err := a.collector.SearchIssues(ctx, collector.IssueSearchOptions{
		ProjectKey:   q.ProjectKey,
		Branch:       q.Branch,
		Organization: org,
		Types:        []domain.IssueType{domain.IssueTypeVulnerability},
		Severities:   q.Severities,
		PageSize:     q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	vulns := issues.Issues
	if vulns == nil {
		vulns = []domain.Issue{}
	}
	derive.SortByPriority(vulns)

	report := &domain.SecurityReport{
		ProjectKey:         q.ProjectKey,
		Branch:             q.Branch,
		Vulnerabilities:    vulns,
		VulnerabilityTotal: issues.Paging.Total,
		BySeverity:         make(map[domain.Severity]int),
	}
	if report.VulnerabilityTotal < len(vulns) {
		report.VulnerabilityTotal = len(vulns)
	}
	for _, v := range vulns {
		report.BySeverity[v.Severity]++
	}

	hotspots, err := a.collector.SearchHotspots(ctx, collector.HotspotSearchOptions{
		ProjectKey:   q.ProjectKey,
		Branch:       q.Branch,
		Status:       q.HotspotStatus,
		Organization: org,
		PageSize:     q.PageSize,
	})
	if err != nil {
		a.log.Warnw("security hotspots unavailable", "project", q.ProjectKey, "error", err)
		return report, nil
	}

	summary := &domain.HotspotSummary{
		Total:         hotspots.Paging.Total,
		ByProbability: make(map[string]int),
		Hotspots:      hotspots.Hotspots,
	}
	if summary.Hotspots == nil {
		summary.Hotspots = []domain.Hotspot{}
	}
	if summary.Total < len(summary.Hotspots) {
		summary.Total = len(summary.Hotspots)
	}
	for _, h := range summary.Hotspots {
		summary.ByProbability[h.VulnerabilityProbability]++
	}
	report.Hotspots = summary
	return report, nil
}
