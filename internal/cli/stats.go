package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/reason-hub-mcp/internal/config"
	"github.com/khanglvm/reason-hub-mcp/internal/storage"
	"github.com/khanglvm/reason-hub-mcp/internal/timing"
)

// NewStatsCmd creates the 'stats' command for inspecting timing data.
func NewStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded timing samples per tool and complexity bucket",
		Long: `Display the timing samples accumulated by the metadata engine:
per tool and complexity bucket, the sample count, the mean observed
duration, and the confidence grade an estimate would currently get.`,
		Example: `  reason-hub-mcp stats
  reason-hub-mcp stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runStats prints the per-bucket timing summary. Read-only.
func runStats(jsonOutput bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store := storage.NewSQLiteStore(cfg.DBPath, zap.NewNop())
	if err := store.Init(); err != nil {
		fmt.Println("No timing data recorded yet.")
		return nil
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		fmt.Println("No timing data recorded yet.")
		return nil
	}
	if len(stats) == 0 {
		fmt.Println("No timing data recorded yet.")
		fmt.Println("Samples accumulate as reasoning tools are invoked through 'serve'.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Timing samples (%d buckets):\n\n", len(stats))
	for _, st := range stats {
		fmt.Printf("  %s\n", st.Tool)
		fmt.Printf("    Bucket:     %s\n", st.Bucket)
		fmt.Printf("    Samples:    %d\n", st.Count)
		fmt.Printf("    Mean:       %d ms\n", st.MeanMS)
		fmt.Printf("    Confidence: %s\n", confidenceForCount(st.Count))
		fmt.Println()
	}

	return nil
}

// confidenceForCount mirrors the estimator's sample-count tiering for
// display purposes.
func confidenceForCount(n int) timing.Confidence {
	switch {
	case n >= 20:
		return timing.ConfidenceHigh
	case n >= 5:
		return timing.ConfidenceMedium
	default:
		return timing.ConfidenceLow
	}
}
