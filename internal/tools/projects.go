package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/render"
)

// ListProjectsTool handles list_projects
type ListProjectsTool struct {
	agg aggregator.Aggregator
}

// NewListProjectsTool creates the list_projects tool
func NewListProjectsTool(agg aggregator.Aggregator) *ListProjectsTool {
	return &ListProjectsTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *ListProjectsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List the projects visible to the configured token, optionally filtered by name or key."),
		mcp.WithString("search", mcp.Description("Match on part of a project name or key")),
		mcp.WithString("quality_gate", mcp.Description("Only projects using this quality gate")),
		mcp.WithString("projects", listArgDesc("Only these project keys.")...),
		organizationArg(),
	}
	return mcp.NewTool("list_projects", append(opts, pageArgs()...)...)
}

// Handle handles the list_projects tool call
func (t *ListProjectsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.ProjectsQuery{
		Search:       a.String("search"),
		QualityGate:  a.String("quality_gate"),
		Organization: a.String("organization"),
		Projects:     a.List("projects"),
		Page:         a.Int("page"),
		PageSize:     a.Int("page_size"),
	}
	if err := a.Err(); err != nil {
		return errorResult("list_projects", err), nil
	}

	page, err := t.agg.ListProjects(ctx, q)
	if err != nil {
		return errorResult("list_projects", err), nil
	}
	return mcp.NewToolResultText(render.Projects(page)), nil
}
