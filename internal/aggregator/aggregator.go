package aggregator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// Aggregator composes collector calls into one record per operation
type Aggregator interface {
	// ListProjects lists the projects visible to the token
	ListProjects(ctx context.Context, q ProjectsQuery) (*domain.ProjectPage, error)

	// GetProjectMetrics retrieves the current metrics of a project
	GetProjectMetrics(ctx context.Context, q MetricsQuery) (*domain.MetricSet, error)

	// GetIssues retrieves issues of a project ordered by priority
	GetIssues(ctx context.Context, q IssuesQuery) (*domain.IssueReport, error)

	// GetQualityGate retrieves the quality gate status of a project
	GetQualityGate(ctx context.Context, q QualityGateQuery) (*domain.QualityGate, error)

	// GetAnalysisHistory retrieves the analyses of a project
	GetAnalysisHistory(ctx context.Context, q AnalysesQuery) (*domain.AnalysisHistory, error)

	// GetMetricTrends retrieves metric history with a trend per metric
	GetMetricTrends(ctx context.Context, q TrendsQuery) (*domain.TrendReport, error)

	// GetRepositoryInfo retrieves where the code of a project lives
	GetRepositoryInfo(ctx context.Context, q RepositoryQuery) (*domain.RepositoryInfo, error)

	// GetSecurityAnalysis retrieves vulnerabilities and security hotspots
	GetSecurityAnalysis(ctx context.Context, q SecurityQuery) (*domain.SecurityReport, error)

	// GetProjectHealth retrieves a one-page overview of a project
	GetProjectHealth(ctx context.Context, q HealthQuery) (*domain.ProjectHealth, error)
}

// Options configures an aggregator
type Options struct {
	// Organization is used when a query does not name one
	Organization string
}

// aggregator implements the Aggregator interface
type aggregator struct {
	collector collector.Collector
	org       string
	log       *zap.SugaredLogger
}

// NewAggregator creates a new aggregator
func NewAggregator(coll collector.Collector, opts Options, log *zap.SugaredLogger) Aggregator {
	return &aggregator{
		collector: coll,
		org:       opts.Organization,
		log:       log.Named("aggregator"),
	}
}

func (a *aggregator) organization(org string) string {
	if org != "" {
		return org
	}
	return a.org
}

// ListProjects lists the projects visible to the token
func (a *aggregator) ListProjects(ctx context.Context, q ProjectsQuery) (*domain.ProjectPage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return a.collector.SearchProjects(ctx, collector.ProjectSearchOptions{
		Search:       q.Search,
		QualityGate:  q.QualityGate,
		Organization: a.organization(q.Organization),
		Projects:     q.Projects,
		Page:         q.Page,
		PageSize:     q.PageSize,
	})
}

// GetProjectMetrics retrieves the current metrics of a project
func (a *aggregator) GetProjectMetrics(ctx context.Context, q MetricsQuery) (*domain.MetricSet, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return a.collector.GetMeasures(ctx, collector.MeasuresOptions{
		Component:    q.ProjectKey,
		MetricKeys:   q.MetricKeys,
		Branch:       q.Branch,
		PullRequest:  q.PullRequest,
		Organization: a.organization(q.Organization),
	})
}

// GetIssues retrieves issues of a project ordered by priority. A project
// without issues yields an empty report.
func (a *aggregator) GetIssues(ctx context.Context, q IssuesQuery) (*domain.IssueReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page, err := a.collector.SearchIssues(ctx, collector.IssueSearchOptions{
		ProjectKey:    q.ProjectKey,
		Branch:        q.Branch,
		PullRequest:   q.PullRequest,
		Organization:  a.organization(q.Organization),
		Severities:    q.Severities,
		Types:         q.Types,
		Statuses:      q.Statuses,
		Tags:          q.Tags,
		Assignees:     q.Assignees,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: q.CreatedBefore,
		Resolved:      q.Resolved,
		Page:          q.Page,
		PageSize:      q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	issues := page.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	derive.SortByPriority(issues)

	total := a.totalEffort(issues)
	return &domain.IssueReport{
		ProjectKey:         q.ProjectKey,
		Issues:             issues,
		Paging:             page.Paging,
		Facets:             page.Facets,
		TotalEffortMinutes: total,
		TotalEffort:        derive.FormatDuration(total),
	}, nil
}

// totalEffort sums the remediation effort of issues, skipping values that do
// not parse.
func (a *aggregator) totalEffort(issues []domain.Issue) int {
	total := 0
	for _, is := range issues {
		if is.Effort == "" {
			continue
		}
		minutes, err := derive.ParseDuration(is.Effort)
		if err != nil {
			a.log.Debugw("unparsable issue effort", "issue", is.Key, "effort", is.Effort)
			continue
		}
		total += minutes
	}
	return total
}

// GetQualityGate retrieves the quality gate status of a project
func (a *aggregator) GetQualityGate(ctx context.Context, q QualityGateQuery) (*domain.QualityGate, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	gate, err := a.collector.GetQualityGateStatus(ctx, collector.QualityGateOptions{
		ProjectKey:   q.ProjectKey,
		Branch:       q.Branch,
		PullRequest:  q.PullRequest,
		Organization: a.organization(q.Organization),
	})
	if err != nil {
		return nil, err
	}
	gate.ProjectKey = q.ProjectKey
	return gate, nil
}

// GetAnalysisHistory retrieves the analyses of a project. The service returns
// them newest first so the first one is the latest.
func (a *aggregator) GetAnalysisHistory(ctx context.Context, q AnalysesQuery) (*domain.AnalysisHistory, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	page, err := a.collector.SearchAnalyses(ctx, collector.AnalysisSearchOptions{
		ProjectKey:   q.ProjectKey,
		Branch:       q.Branch,
		Category:     q.Category,
		From:         q.From,
		To:           q.To,
		Organization: a.organization(q.Organization),
		Page:         q.Page,
		PageSize:     q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	history := &domain.AnalysisHistory{
		ProjectKey: q.ProjectKey,
		Branch:     q.Branch,
		Analyses:   page.Analyses,
		Paging:     page.Paging,
	}
	if history.Analyses == nil {
		history.Analyses = []domain.AnalysisEvent{}
	}
	if len(history.Analyses) > 0 {
		latest := history.Analyses[0]
		history.Latest = &latest
	}
	return history, nil
}

// GetMetricTrends retrieves metric history with a trend per metric
func (a *aggregator) GetMetricTrends(ctx context.Context, q TrendsQuery) (*domain.TrendReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	trends, err := a.collector.GetMeasuresHistory(ctx, collector.HistoryOptions{
		Component:    q.ProjectKey,
		Metrics:      q.Metrics,
		Branch:       q.Branch,
		From:         q.From,
		To:           q.To,
		Organization: a.organization(q.Organization),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trends for %s: %w", q.ProjectKey, err)
	}

	report := &domain.TrendReport{
		ProjectKey: q.ProjectKey,
		Branch:     q.Branch,
		Trends:     make([]domain.MetricTrendSummary, 0, len(trends)),
	}
	for _, t := range trends {
		report.Trends = append(report.Trends, derive.SummarizeTrend(t))
	}
	return report, nil
}
