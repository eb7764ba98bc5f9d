package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"strompris/domain/pricing"
	"strompris/internal/datastore"
	apperrors "strompris/internal/errors"
	"strompris/internal/query"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strompris-check",
		Short: "Validate and summarize a price spreadsheet without starting the dashboard",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newSummaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func yearFlags(cmd *cobra.Command, minYear, maxYear *int) {
	cmd.Flags().IntVar(minYear, "min-year", pricing.DefaultMinYear, "Lowest year the schema accepts")
	cmd.Flags().IntVar(maxYear, "max-year", pricing.DefaultMaxYear, "Highest year the schema accepts")
}

func newValidateCmd() *cobra.Command {
	var minYear, maxYear int

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Run the full load pipeline and report the verdict",
		Long: `Run the file through the same schema validation and tidy transformation
the dashboard performs at startup. Exits non-zero when the file would be
rejected, with the error code in the message.

Example: strompris-check validate strompriser.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := datastore.New(args[0], minYear, maxYear)
			ds, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("[%s] %v", apperrors.GetCode(err), err)
			}
			lo, hi := ds.YearBounds()
			fmt.Printf("OK: %d records, years %d..%d, regions %v\n", ds.Len(), lo, hi, ds.Regions())
			return nil
		},
	}

	yearFlags(cmd, &minYear, &maxYear)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var minYear, maxYear int

	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print per-region summary statistics for a valid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := datastore.New(args[0], minYear, maxYear)
			ds, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("[%s] %v", apperrors.GetCode(err), err)
			}

			lo, hi := ds.YearBounds()
			comparison := query.RegionalComparison(ds, pricing.AllRegionsSelection(lo, hi))
			printSummary(comparison)
			return nil
		},
	}

	yearFlags(cmd, &minYear, &maxYear)
	return cmd
}

func printSummary(comparison []pricing.RegionStats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tNAME\tMEAN\tMIN\tMAX\tSTDDEV\tCV")
	for _, c := range comparison {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.3f\n",
			c.Region, c.DisplayName, c.Mean, c.Min, c.Max, c.StdDev, c.CoefVar)
	}
	w.Flush()
}
