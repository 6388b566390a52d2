package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/model-compare/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "model-compare",
	Short: "Compare paired Neural Net and XGBoost AUROC scores",
	Long:  "Loads a file of paired model-evaluation AUROC scores, derives per-row differences, aggregates win/loss/tie statistics, and renders a difference chart with a terminal summary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
