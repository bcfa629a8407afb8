package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kpi/internal/domain/kpi"
)

var (
	recalcFile   string
	recalcFormat string
)

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate a board snapshot",
	Long:  "Loads a snapshot, runs a full recalculation and prints employees ranked by percentage followed by the metrics and a summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecalc(cmd.OutOrStdout(), recalcFile, recalcFormat)
	},
}

func init() {
	recalcCmd.Flags().StringVarP(&recalcFile, "file", "f", "", "snapshot file (YAML or JSON)")
	recalcCmd.Flags().StringVar(&recalcFormat, "format", "table", "output format: table or json")
	_ = recalcCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(recalcCmd)
}

type recalcOutput struct {
	State   kpi.State   `json:"state"`
	Summary kpi.Summary `json:"summary"`
}

func runRecalc(out io.Writer, path, format string) error {
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q", format)
	}
	svc, state, err := loadBoard(path)
	if err != nil {
		return err
	}
	summary := svc.Summary()

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recalcOutput{State: state, Summary: summary})
	}
	formatBoard(out, state, summary)
	return nil
}

// formatBoard writes employees ranked by percentage, then metrics and totals.
func formatBoard(out io.Writer, state kpi.State, summary kpi.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tEMPLOYEE\tPLAN\tFACT\tPERCENT\tGRADE")
	_, _ = fmt.Fprintln(w, "----\t--------\t----\t----\t-------\t-----")
	for i, e := range kpi.Ranked(state.Employees) {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f%%\t%d\n", i+1, e.Name, e.Plan, e.Fact, e.Percentage, e.Grade)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "METRIC\tPLAN\tFACT\tPERCENT")
	_, _ = fmt.Fprintln(w, "------\t----\t----\t-------")
	for _, m := range state.Metrics {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f%%\n", m.Name, m.Plan, m.Fact, m.Percentage)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nEmployee count: %d\n", summary.EmployeeCount)
	_, _ = fmt.Fprintf(out, "Aggregate bonus: %.2f%% (%.2f%% per employee)\n", summary.AggregateBonus, summary.BonusShare)
	_, _ = fmt.Fprintf(out, "Overall: %.2f%% of plan, average grade %.2f\n", summary.OverallPercentage, summary.AverageGrade)
}
