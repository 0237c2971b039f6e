package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/app"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/server"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/tools"
)

var rootCmd = &cobra.Command{
	Use:   "sonar-quality-mcp",
	Short: "Code quality tools for AI agents",
	Long: `An MCP server exposing SonarQube and SonarCloud quality data to AI agents.

Configure it with SONARQUBE_URL, SONARQUBE_TOKEN and SONARQUBE_ORGANIZATION,
either in the environment or in a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over stdio",
	Long:  `Run the MCP server on stdin/stdout. Logs go to stderr.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Args:  cobra.NoArgs,
	RunE:  runTools,
}

var callCmd = &cobra.Command{
	Use:   "call [tool] [key=value...]",
	Short: "Call one tool and print its result",
	Long: `Call a tool once, the way an agent would, and print the markdown result.

Example:
  sonar-quality-mcp call get_issues project_key=acme_widget severities=BLOCKER,CRITICAL`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", server.Name, server.Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Log.Sync()

	a.Log.Infow("serving tools over stdio", "version", server.Version)
	return mcpserver.ServeStdio(server.New(a.Aggregator))
}

func runTools(cmd *cobra.Command, args []string) error {
	// Definitions do not touch the aggregator so none is needed here.
	printTools(cmd.OutOrStdout(), tools.All(nil))
	return nil
}

func printTools(w io.Writer, all []tools.Tool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tool", "Required", "Optional", "Description"})
	table.SetAutoWrapText(false)
	for _, t := range all {
		def := t.Definition()
		required := make(map[string]bool, len(def.InputSchema.Required))
		for _, r := range def.InputSchema.Required {
			required[r] = true
		}
		var optional []string
		for name := range def.InputSchema.Properties {
			if !required[name] {
				optional = append(optional, name)
			}
		}
		sort.Strings(optional)

		table.Append([]string{
			def.Name,
			strings.Join(def.InputSchema.Required, ", "),
			strings.Join(optional, ", "),
			def.Description,
		})
	}
	table.Render()
}

func runCall(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Log.Sync()

	arguments, err := parseCallArgs(args[1:])
	if err != nil {
		return err
	}

	result, err := callTool(context.Background(), a.Aggregator, args[0], arguments)
	if err != nil {
		return err
	}

	text := resultText(result)
	if result.IsError {
		return fmt.Errorf("%s", text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// callTool invokes the named tool with a flat argument object
func callTool(ctx context.Context, agg aggregator.Aggregator, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	for _, t := range tools.All(agg) {
		if t.Definition().Name != name {
			continue
		}
		req := mcp.CallToolRequest{}
		req.Params.Name = name
		req.Params.Arguments = arguments
		return t.Handle(ctx, req)
	}
	return nil, fmt.Errorf("unknown tool %q, run 'tools' to list them", name)
}

// parseCallArgs turns key=value pairs into a tool argument object
func parseCallArgs(pairs []string) (map[string]any, error) {
	arguments := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q must be key=value", pair)
		}
		arguments[key] = value
	}
	return arguments, nil
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
