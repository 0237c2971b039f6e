package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/render"
)

// ProjectMetricsTool handles get_project_metrics
type ProjectMetricsTool struct {
	agg aggregator.Aggregator
}

// NewProjectMetricsTool creates the get_project_metrics tool
func NewProjectMetricsTool(agg aggregator.Aggregator) *ProjectMetricsTool {
	return &ProjectMetricsTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *ProjectMetricsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_metrics",
		mcp.WithDescription("Get current quality metrics of a project: size, complexity, coverage, duplication, ratings and technical debt."),
		projectKeyArg(),
		mcp.WithString("metrics", listArgDesc("Metric keys to fetch. Defaults to the standard set of fourteen.")...),
		branchArg(),
		pullRequestArg(),
		organizationArg(),
	)
}

// Handle handles the get_project_metrics tool call
func (t *ProjectMetricsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.MetricsQuery{
		ProjectKey:   a.String("project_key"),
		MetricKeys:   a.List("metrics"),
		Branch:       a.String("branch"),
		PullRequest:  a.String("pull_request"),
		Organization: a.String("organization"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_project_metrics", err), nil
	}

	set, err := t.agg.GetProjectMetrics(ctx, q)
	if err != nil {
		return errorResult("get_project_metrics", err), nil
	}
	return mcp.NewToolResultText(render.Metrics(set)), nil
}

// MetricTrendsTool handles get_metric_trends
type MetricTrendsTool struct {
	agg aggregator.Aggregator
}

// NewMetricTrendsTool creates the get_metric_trends tool
func NewMetricTrendsTool(agg aggregator.Aggregator) *MetricTrendsTool {
	return &MetricTrendsTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *MetricTrendsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_metric_trends",
		mcp.WithDescription("Get the history of metrics and whether each is going up, down or staying stable."),
		projectKeyArg(),
		mcp.WithString("metrics", listArgDesc("Metric keys. Defaults to the standard set.")...),
		branchArg(),
		mcp.WithString("from", mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("to", mcp.Description("End date (YYYY-MM-DD)")),
		organizationArg(),
	)
}

// Handle handles the get_metric_trends tool call
func (t *MetricTrendsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.TrendsQuery{
		ProjectKey:   a.String("project_key"),
		Metrics:      a.List("metrics"),
		Branch:       a.String("branch"),
		From:         a.String("from"),
		To:           a.String("to"),
		Organization: a.String("organization"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_metric_trends", err), nil
	}

	report, err := t.agg.GetMetricTrends(ctx, q)
	if err != nil {
		return errorResult("get_metric_trends", err), nil
	}
	return mcp.NewToolResultText(render.MetricTrends(report)), nil
}

// ProjectHealthTool handles get_project_health
type ProjectHealthTool struct {
	agg aggregator.Aggregator
}

// NewProjectHealthTool creates the get_project_health tool
func NewProjectHealthTool(agg aggregator.Aggregator) *ProjectHealthTool {
	return &ProjectHealthTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *ProjectHealthTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_health",
		mcp.WithDescription("Get a one-page health overview: quality gate, ratings, coverage, technical debt and last analysis."),
		projectKeyArg(),
		branchArg(),
		organizationArg(),
	)
}

// Handle handles the get_project_health tool call
func (t *ProjectHealthTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.HealthQuery{
		ProjectKey:   a.String("project_key"),
		Branch:       a.String("branch"),
		Organization: a.String("organization"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_project_health", err), nil
	}

	health, err := t.agg.GetProjectHealth(ctx, q)
	if err != nil {
		return errorResult("get_project_health", err), nil
	}
	return mcp.NewToolResultText(render.ProjectHealth(health)), nil
}
