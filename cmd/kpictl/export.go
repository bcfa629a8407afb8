package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"kpi/internal/domain/reports"
	"kpi/internal/platform/config"
	"kpi/internal/platform/reportclient"
)

var (
	exportFile    string
	exportService string
	exportOut     string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Send a recalculated snapshot to the report generator",
	Long:  "Loads a snapshot, recalculates it and writes the document returned by the report generator. The service URL defaults to REPORT_SERVICE_URL.",
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceURL := exportService
		if serviceURL == "" {
			serviceURL = config.Load().ReportServiceURL
		}
		return runExport(cmd.Context(), cmd.OutOrStdout(), exportFile, serviceURL, exportOut, exportTimeout)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "snapshot file (YAML or JSON)")
	exportCmd.Flags().StringVar(&exportService, "service", "", "report generator URL")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 30*time.Second, "report generator timeout")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, out io.Writer, path, serviceURL, dir string, timeout time.Duration) error {
	if serviceURL == "" {
		return errors.New("report service URL is required (--service or REPORT_SERVICE_URL)")
	}
	_, state, err := loadBoard(path)
	if err != nil {
		return err
	}

	svc := reports.NewService(reportclient.NewClient(serviceURL, timeout), nil, nil)
	doc, err := svc.Export(ctx, state)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	name := filepath.Base(doc.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = reports.DefaultFilename
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, doc.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	_, _ = fmt.Fprintf(out, "wrote %s (%d bytes)\n", target, len(doc.Data))
	return nil
}
