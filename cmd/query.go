package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/router"
)

var (
	queryProvider string
	queryParams   []string
	queryNoAudit  bool
)

var queryCmd = &cobra.Command{
	Use:   "query <operation>",
	Short: "Execute one operation and print the result envelope",
	Long:  "Runs a single named operation (see `marketdata providers` for the list) against the selected provider and prints the JSON result envelope.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		op, ok := router.Lookup(args[0])
		if !ok {
			return eris.Errorf("unknown operation %q", args[0])
		}

		params, err := parseParams(queryParams)
		if err != nil {
			return err
		}

		if !queryNoAudit {
			if err := cfg.Validate("query"); err != nil {
				return err
			}
		}

		exec, st, err := initExecutor(ctx, !queryNoAudit)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		result, err := exec.Execute(ctx, op.Name, op.Model, queryProvider, params)
		if err != nil {
			return eris.Wrapf(err, "query %s", op.Name)
		}
		if op.Deprecated {
			fmt.Fprintf(os.Stderr, "warning: %s\n", op.DeprecationNote)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// parseParams turns repeated key=value flags into a parameter bag.
func parseParams(pairs []string) (provider.Params, error) {
	params := provider.Params{}
	for _, kv := range pairs {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, eris.Errorf("malformed --param %q; expected key=value", kv)
		}
		params[key] = value
	}
	return params, nil
}

func init() {
	queryCmd.Flags().StringVar(&queryProvider, "provider", "", "provider to query (default per operation)")
	queryCmd.Flags().StringArrayVar(&queryParams, "param", nil, "query parameter as key=value (repeatable)")
	queryCmd.Flags().BoolVar(&queryNoAudit, "no-audit", false, "skip writing the audit record")
	rootCmd.AddCommand(queryCmd)
}
