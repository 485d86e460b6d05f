// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analysis"
	"github.com/pdiddy/paper-analyzer/internal/docio"
	"github.com/pdiddy/paper-analyzer/internal/provider"
	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document>",
	Short: "Run the analyzer panel over a parsed paper",
	Long: `Analyze reads a parsed document (JSON or YAML with pages, optional named
sections, and metadata), runs the requested analyzers concurrently, and
prints the resulting report. The report is also saved to the local run
history unless --no-save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	doc, err := docio.Load(args[0])
	if err != nil {
		return err
	}

	cfg, err := analysisConfig(cmd)
	if err != nil {
		return err
	}

	client := provider.NewHTTPClient(cfg.AIConfig, cfg.HTTPConfig)

	orch := analysis.New(client, cfg, os.Stderr)
	report, err := orch.Run(context.Background(), doc)
	if err != nil {
		return err
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if err := saveReport(cmd, report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving report failed: %v\n", err)
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Println(analysis.FormatReport(report))

	if !report.Success {
		return fmt.Errorf("analysis failed: no analyzer succeeded")
	}
	return nil
}

func saveReport(cmd *cobra.Command, report *types.AnalysisReport) error {
	storeDir, _ := cmd.Flags().GetString("store-dir")
	st, err := store.NewStore(types.StoreConfig{Dir: storeDir})
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SaveReport(context.Background(), report)
}

// analysisConfig assembles the run configuration from flags, the config
// file, and loaded secrets. Flags win over config-file values.
func analysisConfig(cmd *cobra.Command) (types.AnalysisConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	apiKey := secretDefault("xai-api-key", viper.GetString("api_key"))
	if apiKey == "" {
		return types.AnalysisConfig{}, fmt.Errorf("no API key: set api_key in the config, PAPER_ANALYZER_API_KEY, or .secrets/xai-api-key")
	}

	workers, _ := cmd.Flags().GetInt("workers")
	analyzerTimeout, _ := cmd.Flags().GetDuration("analyzer-timeout")
	totalTimeout, _ := cmd.Flags().GetDuration("total-timeout")
	noContext, _ := cmd.Flags().GetBool("no-context")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	analyzersFlag, _ := cmd.Flags().GetString("analyzers")

	cfg := types.AnalysisConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			BaseURL:    baseURL,
			MaxRetries: viper.GetInt("max_retries"),
		},
		HTTPConfig: types.HTTPConfig{
			UserAgent: "paper-analyzer/" + version,
		},
		MaxWorkers:           workers,
		AnalyzerTimeout:      analyzerTimeout,
		TotalTimeout:         totalTimeout,
		EnableContextSharing: !noContext,
		Temperature:          temperature,
		MaxTokens:            maxTokens,
	}

	if analyzersFlag != "" {
		for _, name := range strings.Split(analyzersFlag, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.Analyzers = append(cfg.Analyzers, types.AnalyzerName(name))
			}
		}
	}
	return cfg, nil
}

func init() {
	analyzeCmd.Flags().String("model", "", "model identifier (default from config)")
	analyzeCmd.Flags().String("base-url", "", "provider endpoint base URL")
	analyzeCmd.Flags().Int("workers", types.DefaultMaxWorkers, "maximum concurrent analyzers")
	analyzeCmd.Flags().Duration("analyzer-timeout", 0, "per-analyzer deadline (0 = per-analyzer defaults)")
	analyzeCmd.Flags().Duration("total-timeout", 5*time.Minute, "whole-run deadline")
	analyzeCmd.Flags().Bool("no-context", false, "disable the context-sharing second pass")
	analyzeCmd.Flags().String("analyzers", "", "comma-separated analyzer subset (default: full panel)")
	analyzeCmd.Flags().Float64("temperature", types.DefaultTemperature, "sampling temperature")
	analyzeCmd.Flags().Int("max-tokens", types.DefaultMaxTokens, "per-call response token budget")
	analyzeCmd.Flags().Bool("json", false, "output the report as JSON")
	analyzeCmd.Flags().Bool("no-save", false, "skip saving the report to the run history")

	rootCmd.AddCommand(analyzeCmd)
}
