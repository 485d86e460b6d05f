// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the analysis run history",
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	storeDir, _ := cmd.Flags().GetString("store-dir")
	st, err := store.NewStore(types.StoreConfig{Dir: storeDir})
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-7s  %-5s  %-8s  %s\n",
		"Run", "Title", "Status", "Score", "Tokens", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, r := range runs {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-7s  %-5d  %-8d  %s\n",
			r.RunID, title, status, r.Score, r.Tokens, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	runsCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(runsCmd)
}
