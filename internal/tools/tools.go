// Package tools exposes the aggregator operations as MCP tools.
//
// Every tool takes a flat argument object and answers with markdown text.
// Failures are reported as error results so the agent can read them.
package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// Tool is one MCP tool: its schema and its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// All returns every tool backed by agg, in registration order.
func All(agg aggregator.Aggregator) []Tool {
	return []Tool{
		NewListProjectsTool(agg),
		NewProjectMetricsTool(agg),
		NewIssuesTool(agg),
		NewQualityGateTool(agg),
		NewAnalysisHistoryTool(agg),
		NewMetricTrendsTool(agg),
		NewRepositoryInfoTool(agg),
		NewSecurityAnalysisTool(agg),
		NewProjectHealthTool(agg),
	}
}

// errorResult reports a failed operation to the agent
func errorResult(tool string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error in %s: %s", tool, err.Error()))
}

// Shared argument options.

func projectKeyArg() mcp.ToolOption {
	return mcp.WithString("project_key",
		mcp.Required(),
		mcp.Description("Project key, e.g. my-org_my-project"),
	)
}

func branchArg() mcp.ToolOption {
	return mcp.WithString("branch", mcp.Description("Branch name. Defaults to the main branch."))
}

func pullRequestArg() mcp.ToolOption {
	return mcp.WithString("pull_request", mcp.Description("Pull request id. Mutually exclusive with branch."))
}

func organizationArg() mcp.ToolOption {
	return mcp.WithString("organization", mcp.Description("Organization key. Defaults to the configured organization."))
}

func pageArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
		mcp.WithNumber("page_size", mcp.Description("Page size, 1 to 500. Defaults to 100.")),
	}
}

func listArgDesc(desc string) []mcp.PropertyOption {
	return []mcp.PropertyOption{
		mcp.Description(desc + " Array or comma-separated string."),
	}
}

// args reads typed values out of a tool call's argument object. The first
// conversion error is kept and reported by Err.
type args struct {
	raw map[string]any
	err error
}

func newArgs(request mcp.CallToolRequest) *args {
	raw := request.GetArguments()
	if raw == nil {
		raw = map[string]any{}
	}
	return &args{raw: raw}
}

// Err returns the first argument error encountered
func (a *args) Err() error {
	return a.err
}

func (a *args) fail(key, message string) {
	if a.err == nil {
		a.err = apperrors.NewValidationError(key, message)
	}
}

func (a *args) String(key string) string {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	a.fail(key, "must be a string")
	return ""
}

func (a *args) Int(key string) int {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			a.fail(key, "must be a whole number")
			return 0
		}
		return int(n)
	case int:
		return n
	case string:
		if n == "" {
			return 0
		}
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			a.fail(key, "must be a number")
			return 0
		}
		return i
	}
	a.fail(key, "must be a number")
	return 0
}

func (a *args) Bool(key string) *bool {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return nil
	}
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		if b == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			a.fail(key, "must be true or false")
			return nil
		}
		return &parsed
	}
	a.fail(key, "must be a boolean")
	return nil
}

// List accepts a JSON array or a comma-separated string
func (a *args) List(key string) []string {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return nil
	}
	var items []string
	switch l := v.(type) {
	case string:
		items = strings.Split(l, ",")
	case []string:
		items = l
	case []any:
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				a.fail(key, "must be a list of strings")
				return nil
			}
			items = append(items, s)
		}
	default:
		a.fail(key, "must be a list of strings")
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// upperList converts a list argument into an enum slice
func upperList[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(strings.ToUpper(v))
	}
	return out
}
