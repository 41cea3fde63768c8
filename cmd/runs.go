package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/marketdata-cli/internal/model"
	"github.com/sells-group/marketdata-cli/internal/store"
)

var (
	runsOperation string
	runsProvider  string
	runsLimit     int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent query runs from the audit trail",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("runs"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Operation: runsOperation,
			Provider:  runsProvider,
			Limit:     runsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		return formatRuns(os.Stdout, runs)
	},
}

// formatRuns renders the audit rows as an aligned table.
func formatRuns(out io.Writer, runs []model.QueryRun) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPERATION\tPROVIDER\tROWS\tDURATION\tERROR\tAT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID, r.Operation, r.Provider, r.RowCount, r.Duration,
			truncate(r.Error, 40), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	runsCmd.Flags().StringVar(&runsOperation, "operation", "", "filter by operation name")
	runsCmd.Flags().StringVar(&runsProvider, "provider", "", "filter by provider")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum rows to show")
	rootCmd.AddCommand(runsCmd)
}
