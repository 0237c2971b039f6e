package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/render"
)

// QualityGateTool handles get_quality_gate
type QualityGateTool struct {
	agg aggregator.Aggregator
}

// NewQualityGateTool creates the get_quality_gate tool
func NewQualityGateTool(agg aggregator.Aggregator) *QualityGateTool {
	return &QualityGateTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *QualityGateTool) Definition() mcp.Tool {
	return mcp.NewTool("get_quality_gate",
		mcp.WithDescription("Get the quality gate status of a project with each condition's threshold and actual value."),
		projectKeyArg(),
		branchArg(),
		pullRequestArg(),
		organizationArg(),
	)
}

// Handle handles the get_quality_gate tool call
func (t *QualityGateTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.QualityGateQuery{
		ProjectKey:   a.String("project_key"),
		Branch:       a.String("branch"),
		PullRequest:  a.String("pull_request"),
		Organization: a.String("organization"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_quality_gate", err), nil
	}

	gate, err := t.agg.GetQualityGate(ctx, q)
	if err != nil {
		return errorResult("get_quality_gate", err), nil
	}
	return mcp.NewToolResultText(render.QualityGate(gate)), nil
}

// AnalysisHistoryTool handles get_analysis_history
type AnalysisHistoryTool struct {
	agg aggregator.Aggregator
}

// NewAnalysisHistoryTool creates the get_analysis_history tool
func NewAnalysisHistoryTool(agg aggregator.Aggregator) *AnalysisHistoryTool {
	return &AnalysisHistoryTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *AnalysisHistoryTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Get the analyses of a project, newest first, with versions and recorded events."),
		projectKeyArg(),
		branchArg(),
		mcp.WithString("category",
			mcp.Description("Only analyses with an event of this category"),
			mcp.Enum(aggregator.AnalysisCategories...),
		),
		mcp.WithString("from", mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("to", mcp.Description("End date (YYYY-MM-DD)")),
		organizationArg(),
	}
	return mcp.NewTool("get_analysis_history", append(opts, pageArgs()...)...)
}

// Handle handles the get_analysis_history tool call
func (t *AnalysisHistoryTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.AnalysesQuery{
		ProjectKey:   a.String("project_key"),
		Branch:       a.String("branch"),
		Category:     strings.ToUpper(a.String("category")),
		From:         a.String("from"),
		To:           a.String("to"),
		Organization: a.String("organization"),
		Page:         a.Int("page"),
		PageSize:     a.Int("page_size"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_analysis_history", err), nil
	}

	history, err := t.agg.GetAnalysisHistory(ctx, q)
	if err != nil {
		return errorResult("get_analysis_history", err), nil
	}
	return mcp.NewToolResultText(render.AnalysisHistory(history)), nil
}
