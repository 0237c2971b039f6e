package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/render"
)

// RepositoryInfoTool handles get_repository_info
type RepositoryInfoTool struct {
	agg aggregator.Aggregator
}

// NewRepositoryInfoTool creates the get_repository_info tool
func NewRepositoryInfoTool(agg aggregator.Aggregator) *RepositoryInfoTool {
	return &RepositoryInfoTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *RepositoryInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_repository_info",
		mcp.WithDescription("Find where a project's code lives: repository URL and provider, branches, project links and DevOps platform binding. Blocks the service cannot provide are reported as not available."),
		projectKeyArg(),
		organizationArg(),
	)
}

// Handle handles the get_repository_info tool call
func (t *RepositoryInfoTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.RepositoryQuery{
		ProjectKey:   a.String("project_key"),
		Organization: a.String("organization"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_repository_info", err), nil
	}

	info, err := t.agg.GetRepositoryInfo(ctx, q)
	if err != nil {
		return errorResult("get_repository_info", err), nil
	}
	return mcp.NewToolResultText(render.RepositoryInfo(info)), nil
}
