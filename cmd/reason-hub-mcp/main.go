/*
Package main is the entry point for the reason-hub-mcp CLI.

reason-hub-mcp is an MCP server exposing structured reasoning tools
(divergent exploration, tree search, MCTS, claim graphs, counterfactual
analysis). Each tool response carries a metadata block predicting the
duration of the next call, recommending follow-up tools and matching the
session's history against known multi-step workflows.

Usage:
  reason-hub-mcp [command]

Available Commands:
  serve       Run the MCP server (stdio transport)
  stats       Show recorded timing samples
  help        Help about any command

Examples:
  # Run as MCP server
  reason-hub-mcp serve

  # Inspect accumulated timing data
  reason-hub-mcp stats
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanglvm/reason-hub-mcp/internal/cli"
	"github.com/khanglvm/reason-hub-mcp/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reason-hub-mcp",
		Short: "MCP server for structured reasoning with timing-aware metadata",
		Long: `reason-hub-mcp is an MCP (Model Context Protocol) server exposing
structured reasoning tools to AI clients:
  • reason_divergent      - parallel-perspective exploration
  • reason_tree           - tree-of-thought search
  • reason_mcts           - Monte-Carlo tree search
  • reason_graph          - claim-graph reasoning
  • reason_counterfactual - counterfactual scenario analysis

Every tool response includes a metadata block: a historical timing
prediction with confidence grading, suggested follow-up tools, and the
multi-step workflows the session appears to be executing.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
