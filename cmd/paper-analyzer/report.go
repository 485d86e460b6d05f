// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/analysis"
	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report <run-id>",
	Short: "Print a stored analysis report",
	Long: `Report re-renders a report from the local run history. Use "runs" to
list available run ids. The findings of a run can also be exported to
YAML with --export-findings.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	storeDir, _ := cmd.Flags().GetString("store-dir")
	st, err := store.NewStore(types.StoreConfig{Dir: storeDir})
	if err != nil {
		return err
	}
	defer st.Close()

	runID := args[0]

	if export, _ := cmd.Flags().GetBool("export-findings"); export {
		path, err := st.ExportFindingsYAML(context.Background(), runID)
		if err != nil {
			return err
		}
		fmt.Println("Exported findings to", path)
		return nil
	}

	report, err := st.LoadReport(context.Background(), runID)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Println(analysis.FormatReport(report))
	return nil
}

func init() {
	reportCmd.Flags().Bool("json", false, "output the report as JSON")
	reportCmd.Flags().Bool("export-findings", false, "export the run's findings to YAML instead of printing")

	rootCmd.AddCommand(reportCmd)
}
