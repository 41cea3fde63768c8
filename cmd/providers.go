package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/router"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List operations, their models, and registered providers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return formatOperations(os.Stdout, buildRegistry())
	},
}

// formatOperations renders the operation table with registered providers.
func formatOperations(out io.Writer, reg *provider.Registry) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tMODEL\tPROVIDERS\tNOTES")
	for _, op := range router.Operations {
		providers := reg.Providers(op.Model)
		notes := ""
		if op.Deprecated {
			notes = "deprecated"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			op.Name, op.Model, strings.Join(providers, ","), notes)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
