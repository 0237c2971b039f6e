// Package server wires the tools into an MCP server.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/tools"
)

// Name is the server name announced to clients
const Name = "sonar-quality-mcp"

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered
func New(agg aggregator.Aggregator) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, tool := range tools.All(agg) {
		s.AddTool(tool.Definition(), tool.Handle)
	}
	return s
}

const instructions = `Tools for reading code quality data from SonarQube or SonarCloud.
Start with list_projects to find a project key, then get_project_health for an overview.
Use get_issues and get_security_analysis for details, and get_metric_trends to see how metrics change over time.`
