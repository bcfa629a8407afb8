package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kpi/internal/domain/kpi"
	"kpi/internal/platform/snapshot"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:          "kpictl",
	Short:        "Offline tools for KPI bonus boards",
	Long:         "Recalculates board snapshots (YAML or JSON) and sends them to the report generator.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q", logLevel)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBoard reads a snapshot file and returns the recalculated board.
func loadBoard(path string) (*kpi.Service, kpi.State, error) {
	snap, err := snapshot.Load(path)
	if err != nil {
		return nil, kpi.State{}, fmt.Errorf("load snapshot: %w", err)
	}
	svc := kpi.NewService(kpi.NewBoard(), nil)
	state, err := snap.Apply(svc)
	if err != nil {
		return nil, kpi.State{}, fmt.Errorf("load snapshot: %w", err)
	}
	slog.Debug("snapshot loaded", "path", path, "employees", len(state.Employees), "metrics", len(state.Metrics))
	return svc, state, nil
}
