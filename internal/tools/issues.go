package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/render"
)

// IssuesTool handles get_issues
type IssuesTool struct {
	agg aggregator.Aggregator
}

// NewIssuesTool creates the get_issues tool
func NewIssuesTool(agg aggregator.Aggregator) *IssuesTool {
	return &IssuesTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *IssuesTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search the issues of a project. Results are ordered by priority, vulnerabilities and bugs first."),
		projectKeyArg(),
		mcp.WithString("severities", listArgDesc("BLOCKER, CRITICAL, MAJOR, MINOR, INFO.")...),
		mcp.WithString("types", listArgDesc("BUG, VULNERABILITY, CODE_SMELL, SECURITY_HOTSPOT.")...),
		mcp.WithString("statuses", listArgDesc("OPEN, CONFIRMED, REOPENED, RESOLVED, CLOSED.")...),
		mcp.WithString("tags", listArgDesc("Issue tags.")...),
		mcp.WithString("assignees", listArgDesc("Assignee logins.")...),
		mcp.WithString("created_after", mcp.Description("Only issues created after this date (YYYY-MM-DD)")),
		mcp.WithString("created_before", mcp.Description("Only issues created before this date (YYYY-MM-DD)")),
		mcp.WithBoolean("resolved", mcp.Description("Only resolved (true) or unresolved (false) issues")),
		branchArg(),
		pullRequestArg(),
		organizationArg(),
	}
	return mcp.NewTool("get_issues", append(opts, pageArgs()...)...)
}

// Handle handles the get_issues tool call
func (t *IssuesTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.IssuesQuery{
		ProjectKey:    a.String("project_key"),
		Branch:        a.String("branch"),
		PullRequest:   a.String("pull_request"),
		Organization:  a.String("organization"),
		Severities:    upperList[domain.Severity](a.List("severities")),
		Types:         upperList[domain.IssueType](a.List("types")),
		Statuses:      upperList[domain.IssueStatus](a.List("statuses")),
		Tags:          a.List("tags"),
		Assignees:     a.List("assignees"),
		CreatedAfter:  a.String("created_after"),
		CreatedBefore: a.String("created_before"),
		Resolved:      a.Bool("resolved"),
		Page:          a.Int("page"),
		PageSize:      a.Int("page_size"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_issues", err), nil
	}

	report, err := t.agg.GetIssues(ctx, q)
	if err != nil {
		return errorResult("get_issues", err), nil
	}
	return mcp.NewToolResultText(render.Issues(report)), nil
}

// SecurityAnalysisTool handles get_security_analysis
type SecurityAnalysisTool struct {
	agg aggregator.Aggregator
}

// NewSecurityAnalysisTool creates the get_security_analysis tool
func NewSecurityAnalysisTool(agg aggregator.Aggregator) *SecurityAnalysisTool {
	return &SecurityAnalysisTool{agg: agg}
}

// Definition returns the MCP tool definition
func (t *SecurityAnalysisTool) Definition() mcp.Tool {
	return mcp.NewTool("get_security_analysis",
		mcp.WithDescription("Get the vulnerabilities and security hotspots of a project."),
		projectKeyArg(),
		mcp.WithString("severities", listArgDesc("Vulnerability severities to include.")...),
		mcp.WithString("hotspot_status",
			mcp.Description("Hotspot review status"),
			mcp.Enum(aggregator.HotspotStatuses...),
		),
		mcp.WithNumber("page_size", mcp.Description("Page size for both searches, 1 to 500")),
		branchArg(),
		organizationArg(),
	)
}

// Handle handles the get_security_analysis tool call
func (t *SecurityAnalysisTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := newArgs(request)
	q := aggregator.SecurityQuery{
		ProjectKey:    a.String("project_key"),
		Branch:        a.String("branch"),
		Organization:  a.String("organization"),
		Severities:    upperList[domain.Severity](a.List("severities")),
		HotspotStatus: a.String("hotspot_status"),
		PageSize:      a.Int("page_size"),
	}
	if err := a.Err(); err != nil {
		return errorResult("get_security_analysis", err), nil
	}

	report, err := t.agg.GetSecurityAnalysis(ctx, q)
	if err != nil {
		return errorResult("get_security_analysis", err), nil
	}
	return mcp.NewToolResultText(render.SecurityReport(report)), nil
}
