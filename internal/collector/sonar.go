package collector

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// sonarCollector implements Collector against the SonarQube web API
type sonarCollector struct {
	api Requester
}

// NewSonarCollector creates a new collector on top of an API client
func NewSonarCollector(api Requester) Collector {
	return &sonarCollector{api: api}
}

// SearchProjects lists projects
func (c *sonarCollector) SearchProjects(ctx context.Context, opts ProjectSearchOptions) (*domain.ProjectPage, error) {
	params := url.Values{}
	params.Set("qualifiers", "TRK")
	setIf(params, "search", opts.Search)
	setIf(params, "qualityGate", opts.QualityGate)
	setIf(params, "organization", opts.Organization)
	setList(params, "projects", opts.Projects)
	setPaging(params, opts.Page, opts.PageSize)

	var resp struct {
		Components []sonarProject `json:"components"`
		Paging     domain.Paging  `json:"paging"`
	}
	if err := c.api.Get(ctx, "/projects/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	page := &domain.ProjectPage{
		Projects: make([]domain.Project, 0, len(resp.Components)),
		Paging:   resp.Paging,
	}
	for _, p := range resp.Components {
		page.Projects = append(page.Projects, p.toDomain())
	}
	return page, nil
}

// GetMeasures retrieves the current value of metrics for a component
func (c *sonarCollector) GetMeasures(ctx context.Context, opts MeasuresOptions) (*domain.MetricSet, error) {
	metrics := opts.MetricKeys
	if len(metrics) == 0 {
		metrics = DefaultMetricKeys
	}

	params := url.Values{}
	params.Set("component", opts.Component)
	params.Set("metricKeys", strings.Join(metrics, ","))
	setIf(params, "branch", opts.Branch)
	setIf(params, "pullRequest", opts.PullRequest)
	setIf(params, "organization", opts.Organization)

	var resp struct {
		Component struct {
			Key      string `json:"key"`
			Measures []struct {
				Metric string `json:"metric"`
				Value  string `json:"value"`
			} `json:"measures"`
		} `json:"component"`
	}
	if err := c.api.Get(ctx, "/measures/component", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get measures for %s: %w", opts.Component, err)
	}

	set := &domain.MetricSet{
		ProjectKey:  opts.Component,
		Branch:      opts.Branch,
		PullRequest: opts.PullRequest,
		Measures:    make(map[string]domain.MeasureValue, len(resp.Component.Measures)),
	}
	for _, m := range resp.Component.Measures {
		set.Measures[m.Metric] = domain.NewMeasureValue(m.Value)
	}
	return set, nil
}

// SearchIssues searches issues of a project
func (c *sonarCollector) SearchIssues(ctx context.Context, opts IssueSearchOptions) (*domain.IssuePage, error) {
	fields := opts.AdditionalFields
	if len(fields) == 0 {
		fields = []string{DefaultAdditionalFields}
	}
	for _, f := range fields {
		if !AdditionalFields[f] {
			return nil, apperrors.NewValidationError("additional_fields", fmt.Sprintf("unsupported value %q", f))
		}
	}
	facets := opts.Facets
	if len(facets) == 0 {
		facets = DefaultIssueFacets
	}

	params := url.Values{}
	params.Set("componentKeys", opts.ProjectKey)
	params.Set("additionalFields", strings.Join(fields, ","))
	params.Set("facets", strings.Join(facets, ","))
	setPaging(params, opts.Page, opts.PageSize)
	setIf(params, "branch", opts.Branch)
	setIf(params, "pullRequest", opts.PullRequest)
	setIf(params, "organization", opts.Organization)
	setList(params, "severities", opts.Severities)
	setList(params, "types", opts.Types)
	setList(params, "statuses", opts.Statuses)
	setList(params, "tags", opts.Tags)
	setList(params, "assignees", opts.Assignees)
	setIf(params, "createdAfter", opts.CreatedAfter)
	setIf(params, "createdBefore", opts.CreatedBefore)
	if opts.Resolved != nil {
		params.Set("resolved", strconv.FormatBool(*opts.Resolved))
	}

	var resp struct {
		Issues []sonarIssue  `json:"issues"`
		Paging domain.Paging `json:"paging"`
		Facets []sonarFacet  `json:"facets"`
		Rules  []struct {
			Key string `json:"key"`
		} `json:"rules"`
	}
	if err := c.api.Get(ctx, "/issues/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search issues for %s: %w", opts.ProjectKey, err)
	}

	page := &domain.IssuePage{
		Issues: make([]domain.Issue, 0, len(resp.Issues)),
		Paging: resp.Paging,
	}
	for _, is := range resp.Issues {
		page.Issues = append(page.Issues, is.toDomain())
	}
	for _, f := range resp.Facets {
		page.Facets = append(page.Facets, f.toDomain())
	}
	for _, r := range resp.Rules {
		page.Rules = append(page.Rules, r.Key)
	}
	return page, nil
}

// SearchHotspots searches security hotspots of a project
func (c *sonarCollector) SearchHotspots(ctx context.Context, opts HotspotSearchOptions) (*domain.HotspotPage, error) {
	params := url.Values{}
	params.Set("projectKey", opts.ProjectKey)
	setPaging(params, opts.Page, opts.PageSize)
	setIf(params, "branch", opts.Branch)
	setIf(params, "status", opts.Status)
	setIf(params, "organization", opts.Organization)

	var resp struct {
		Hotspots []sonarHotspot `json:"hotspots"`
		Paging   domain.Paging  `json:"paging"`
	}
	if err := c.api.Get(ctx, "/hotspots/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search hotspots for %s: %w", opts.ProjectKey, err)
	}

	page := &domain.HotspotPage{
		Hotspots: make([]domain.Hotspot, 0, len(resp.Hotspots)),
		Paging:   resp.Paging,
	}
	for _, h := range resp.Hotspots {
		page.Hotspots = append(page.Hotspots, h.toDomain())
	}
	return page, nil
}

// GetQualityGateStatus retrieves the quality gate status of a project
func (c *sonarCollector) GetQualityGateStatus(ctx context.Context, opts QualityGateOptions) (*domain.QualityGate, error) {
	params := url.Values{}
	params.Set("projectKey", opts.ProjectKey)
	setIf(params, "branch", opts.Branch)
	setIf(params, "pullRequest", opts.PullRequest)
	setIf(params, "organization", opts.Organization)

	var resp struct {
		ProjectStatus struct {
			Status     string `json:"status"`
			Conditions []struct {
				Status         string `json:"status"`
				MetricKey      string `json:"metricKey"`
				Comparator     string `json:"comparator"`
				ErrorThreshold string `json:"errorThreshold"`
				ActualValue    string `json:"actualValue"`
			} `json:"conditions"`
		} `json:"projectStatus"`
	}
	if err := c.api.Get(ctx, "/qualitygates/project_status", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get quality gate status for %s: %w", opts.ProjectKey, err)
	}

	gate := &domain.QualityGate{
		ProjectKey: opts.ProjectKey,
		Status:     domain.GateStatus(resp.ProjectStatus.Status),
		Conditions: make([]domain.Condition, 0, len(resp.ProjectStatus.Conditions)),
	}
	for _, cond := range resp.ProjectStatus.Conditions {
		gate.Conditions = append(gate.Conditions, domain.Condition{
			Metric:         cond.MetricKey,
			Comparator:     cond.Comparator,
			ErrorThreshold: cond.ErrorThreshold,
			ActualValue:    cond.ActualValue,
			Status:         domain.GateStatus(cond.Status),
		})
	}
	return gate, nil
}

// SearchAnalyses retrieves the analyses of a project, newest first
func (c *sonarCollector) SearchAnalyses(ctx context.Context, opts AnalysisSearchOptions) (*domain.AnalysisPage, error) {
	params := url.Values{}
	params.Set("project", opts.ProjectKey)
	setPaging(params, opts.Page, opts.PageSize)
	setIf(params, "branch", opts.Branch)
	setIf(params, "category", opts.Category)
	setIf(params, "from", opts.From)
	setIf(params, "to", opts.To)
	setIf(params, "organization", opts.Organization)

	var resp struct {
		Analyses []sonarAnalysis `json:"analyses"`
		Paging   domain.Paging   `json:"paging"`
	}
	if err := c.api.Get(ctx, "/project_analyses/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search analyses for %s: %w", opts.ProjectKey, err)
	}

	page := &domain.AnalysisPage{
		Analyses: make([]domain.AnalysisEvent, 0, len(resp.Analyses)),
		Paging:   resp.Paging,
	}
	for _, a := range resp.Analyses {
		page.Analyses = append(page.Analyses, a.toDomain())
	}
	return page, nil
}

// GetMeasuresHistory retrieves the history of metrics for a component
func (c *sonarCollector) GetMeasuresHistory(ctx context.Context, opts HistoryOptions) ([]domain.MetricTrend, error) {
	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = DefaultMetricKeys
	}

	params := url.Values{}
	params.Set("component", opts.Component)
	params.Set("metrics", strings.Join(metrics, ","))
	setIf(params, "branch", opts.Branch)
	setIf(params, "from", opts.From)
	setIf(params, "to", opts.To)
	setIf(params, "organization", opts.Organization)

	var resp struct {
		Measures []struct {
			Metric  string `json:"metric"`
			History []struct {
				Date  string  `json:"date"`
				Value *string `json:"value"`
			} `json:"history"`
		} `json:"measures"`
	}
	if err := c.api.Get(ctx, "/measures/search_history", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get measures history for %s: %w", opts.Component, err)
	}

	trends := make([]domain.MetricTrend, 0, len(resp.Measures))
	for _, m := range resp.Measures {
		trend := domain.MetricTrend{
			Metric:  m.Metric,
			History: make([]domain.TrendPoint, 0, len(m.History)),
		}
		for _, h := range m.History {
			point := domain.TrendPoint{Date: parseTime(h.Date)}
			if h.Value != nil {
				if v, err := strconv.ParseFloat(*h.Value, 64); err == nil {
					point.Value = &v
				}
			}
			trend.History = append(trend.History, point)
		}
		trends = append(trends, trend)
	}
	return trends, nil
}

// GetProjectLinks retrieves the links attached to a project
func (c *sonarCollector) GetProjectLinks(ctx context.Context, projectKey string) ([]domain.ProjectLink, error) {
	params := url.Values{}
	params.Set("projectKey", projectKey)

	var resp struct {
		Links []struct {
			Type string `json:"type"`
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"links"`
	}
	if err := c.api.Get(ctx, "/project_links/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get links for %s: %w", projectKey, err)
	}

	links := make([]domain.ProjectLink, 0, len(resp.Links))
	for _, l := range resp.Links {
		links = append(links, domain.ProjectLink{Type: l.Type, Name: l.Name, URL: l.URL})
	}
	return links, nil
}

// ListBranches retrieves the analyzed branches of a project
func (c *sonarCollector) ListBranches(ctx context.Context, projectKey string) ([]domain.Branch, error) {
	params := url.Values{}
	params.Set("project", projectKey)

	var resp struct {
		Branches []struct {
			Name         string `json:"name"`
			IsMain       bool   `json:"isMain"`
			Type         string `json:"type"`
			AnalysisDate string `json:"analysisDate"`
		} `json:"branches"`
	}
	if err := c.api.Get(ctx, "/project_branches/list", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list branches for %s: %w", projectKey, err)
	}

	branches := make([]domain.Branch, 0, len(resp.Branches))
	for _, b := range resp.Branches {
		branches = append(branches, domain.Branch{
			Name:         b.Name,
			IsMain:       b.IsMain,
			Type:         b.Type,
			AnalysisDate: parseTimePtr(b.AnalysisDate),
		})
	}
	return branches, nil
}

// GetALMIntegration retrieves the DevOps platform binding of a project
func (c *sonarCollector) GetALMIntegration(ctx context.Context, projectKey string) (*domain.ALMIntegration, error) {
	params := url.Values{}
	params.Set("projectKey", projectKey)

	var resp struct {
		ALMIntegration *struct {
			ALM        string `json:"alm"`
			URL        string `json:"url"`
			Repository string `json:"repository"`
		} `json:"almIntegration"`
	}
	if err := c.api.Get(ctx, "/alm_integrations/search_projects", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get ALM integration for %s: %w", projectKey, err)
	}

	if resp.ALMIntegration == nil || resp.ALMIntegration.ALM == "" {
		return nil, nil
	}
	return &domain.ALMIntegration{
		Provider:   resp.ALMIntegration.ALM,
		URL:        resp.ALMIntegration.URL,
		Identifier: resp.ALMIntegration.Repository,
	}, nil
}

func setIf(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func setList[T ~string](params url.Values, key string, values []T) {
	if len(values) == 0 {
		return
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	params.Set(key, strings.Join(parts, ","))
}

func setPaging(params url.Values, page, pageSize int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	params.Set("ps", strconv.Itoa(pageSize))
	params.Set("p", strconv.Itoa(page))
}

var timeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02",
}

// parseTime reads the timestamp formats the service emits; unparsable input
// yields the zero time.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
