/*
Package cli implements the reason-hub-mcp commands.
*/
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/reason-hub-mcp/internal/config"
	"github.com/khanglvm/reason-hub-mcp/internal/logging"
	"github.com/khanglvm/reason-hub-mcp/internal/mcp"
	"github.com/khanglvm/reason-hub-mcp/internal/metadata"
	"github.com/khanglvm/reason-hub-mcp/internal/preset"
	"github.com/khanglvm/reason-hub-mcp/internal/reasoning"
	"github.com/khanglvm/reason-hub-mcp/internal/session"
	"github.com/khanglvm/reason-hub-mcp/internal/storage"
	"github.com/khanglvm/reason-hub-mcp/internal/suggest"
	"github.com/khanglvm/reason-hub-mcp/internal/timing"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the reason-hub-mcp server using stdio transport.

The server exposes the reasoning tools to AI clients:
  • reason_divergent      - parallel-perspective exploration
  • reason_tree           - tree-of-thought search
  • reason_mcts           - Monte-Carlo tree search
  • reason_graph          - claim-graph reasoning
  • reason_counterfactual - counterfactual scenario analysis

Every response carries a metadata block with a timing prediction,
next-tool suggestions and matched workflow presets.`,
		Example: `  # Run directly
  reason-hub-mcp serve

  # Add to Claude Code
  claude mcp add reason-hub -- reason-hub-mcp serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// runServe wires the engine and runs the server with signal handling.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	store := storage.NewSQLiteStore(cfg.DBPath, logger)
	if err := store.Init(); err != nil {
		// Degraded store still serves: estimates fall back to the
		// static model with low confidence.
		logger.Warn("timing store unavailable, serving with static estimates", zap.Error(err))
	}
	defer store.Close()

	if cfg.RetentionDays > 0 {
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := store.Cleanup(retention); err != nil {
			logger.Warn("retention sweep failed", zap.Error(err))
		}
	}

	server, err := buildServer(cfg, store, logger)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return nil
	case err := <-errChan:
		// Run returned: stdin closed or transport error.
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// buildServer validates the static catalogs and assembles the engine.
// Catalog misconfiguration fails here, at startup, never at request
// time.
func buildServer(cfg *config.Config, store storage.Store, logger *zap.Logger) (*mcp.Server, error) {
	defaults := timing.Defaults()
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool defaults: %w", err)
	}

	rules := suggest.Rules()
	if err := suggest.Validate(rules, defaults.Known); err != nil {
		return nil, fmt.Errorf("invalid suggestion rules: %w", err)
	}

	presets := preset.Catalog()
	if err := preset.Validate(presets, defaults.Known); err != nil {
		return nil, fmt.Errorf("invalid preset catalog: %w", err)
	}

	estimator := timing.NewEstimator(store, defaults, logger)
	builder := metadata.NewBuilder(
		store,
		session.NewStore(cfg.HistoryWindow),
		estimator,
		suggest.NewEngine(rules, estimator, cfg.FactoryTimeoutMS),
		preset.NewMatcher(presets),
		cfg.FactoryTimeoutMS,
		logger,
	)

	return mcp.NewServer(reasoning.Registry(), builder, logger), nil
}
