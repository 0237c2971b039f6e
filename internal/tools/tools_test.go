package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator/aggregatortest"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

func callRequest(arguments map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = arguments
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", result.Content[0])
	return ""
}

func TestAllRegistersNineTools(t *testing.T) {
	names := make([]string, 0, 9)
	for _, tool := range All(new(aggregatortest.MockAggregator)) {
		names = append(names, tool.Definition().Name)
	}
	assert.Equal(t, []string{
		"list_projects",
		"get_project_metrics",
		"get_issues",
		"get_quality_gate",
		"get_analysis_history",
		"get_metric_trends",
		"get_repository_info",
		"get_security_analysis",
		"get_project_health",
	}, names)
}

func TestProjectKeyIsRequiredInSchema(t *testing.T) {
	def := NewIssuesTool(nil).Definition()
	assert.Contains(t, def.InputSchema.Required, "project_key")
	assert.Contains(t, def.InputSchema.Properties, "severities")
}

func TestIssuesTool_ParsesArguments(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)
	resolved := false
	agg.On("GetIssues", mock.Anything, aggregator.IssuesQuery{
		ProjectKey: "acme_widget",
		Severities: []domain.Severity{domain.SeverityBlocker, domain.SeverityCritical},
		Types:      []domain.IssueType{domain.IssueTypeBug},
		Tags:       []string{"security", "cwe"},
		Resolved:   &resolved,
		Page:       2,
		PageSize:   25,
	}).Return(&domain.IssueReport{ProjectKey: "acme_widget", Issues: []domain.Issue{}}, nil)

	result, err := NewIssuesTool(agg).Handle(context.Background(), callRequest(map[string]any{
		"project_key": "acme_widget",
		"severities":  "blocker, critical",
		"types":       []any{"BUG"},
		"tags":        []any{"security", "cwe"},
		"resolved":    false,
		"page":        float64(2),
		"page_size":   "25",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "No issues found.")
	agg.AssertExpectations(t)
}

func TestIssuesTool_BadArgumentIsErrorResult(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)

	result, err := NewIssuesTool(agg).Handle(context.Background(), callRequest(map[string]any{
		"project_key": "acme_widget",
		"page_size":   1.5,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Error in get_issues: VALIDATION_ERROR: invalid page_size")
	agg.AssertNotCalled(t, "GetIssues", mock.Anything, mock.Anything)
}

func TestRepositoryInfoTool_UpstreamErrorIsReported(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)
	agg.On("GetRepositoryInfo", mock.Anything, aggregator.RepositoryQuery{ProjectKey: "acme_widget"}).
		Return(nil, apperrors.NewUpstreamHTTPError(403, "Insufficient privileges", ""))

	result, err := NewRepositoryInfoTool(agg).Handle(context.Background(), callRequest(map[string]any{
		"project_key": "acme_widget",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error in get_repository_info: UPSTREAM_HTTP_ERROR: 403 - Insufficient privileges", resultText(t, result))
}

func TestRepositoryInfoTool_PartialRecord(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)
	agg.On("GetRepositoryInfo", mock.Anything, mock.Anything).
		Return(&domain.RepositoryInfo{ProjectKey: "acme_widget", ProjectName: "Widget"}, nil)

	result, err := NewRepositoryInfoTool(agg).Handle(context.Background(), callRequest(map[string]any{
		"project_key": "acme_widget",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "# Repository Information for acme_widget")
	assert.Contains(t, text, "Not available.")
}

func TestListProjectsTool_NoArguments(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)
	agg.On("ListProjects", mock.Anything, aggregator.ProjectsQuery{}).
		Return(&domain.ProjectPage{}, nil)

	result, err := NewListProjectsTool(agg).Handle(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No projects found.")
}

func TestSecurityAnalysisTool(t *testing.T) {
	agg := new(aggregatortest.MockAggregator)
	agg.On("GetSecurityAnalysis", mock.Anything, aggregator.SecurityQuery{
		ProjectKey:    "acme_widget",
		HotspotStatus: "TO_REVIEW",
	}).Return(nil, errors.New("boom"))

	result, err := NewSecurityAnalysisTool(agg).Handle(context.Background(), callRequest(map[string]any{
		"project_key":    "acme_widget",
		"hotspot_status": "TO_REVIEW",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error in get_security_analysis: boom", resultText(t, result))
}

func TestArgsList(t *testing.T) {
	a := &args{raw: map[string]any{
		"csv":   " a, b ,,c ",
		"array": []any{"x", " y "},
		"empty": "",
		"bad":   []any{1},
	}}
	assert.Equal(t, []string{"a", "b", "c"}, a.List("csv"))
	assert.Equal(t, []string{"x", "y"}, a.List("array"))
	assert.Nil(t, a.List("empty"))
	assert.Nil(t, a.List("missing"))
	assert.NoError(t, a.Err())

	assert.Nil(t, a.List("bad"))
	assert.True(t, apperrors.IsValidation(a.Err()))
}
