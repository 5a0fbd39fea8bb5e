package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tvenergy/internal/charts"
	"tvenergy/internal/config"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/logger"
	"tvenergy/internal/reports"
	"tvenergy/internal/server"
	"tvenergy/internal/storage"
)

// runner holds the components both commands share
type runner struct {
	cfg       *config.Config
	fetcher   *fetchers.DataFetcher
	dashboard *reports.DashboardService
	close     func() error
}

func newRunner(ctx context.Context, mockup bool) (*runner, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if mockup {
		cfg.MockupMode = true
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	chartsCfg, err := config.LoadChartsConfig(cfg.ChartsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart configuration: %w", err)
	}

	source, closeSource, err := server.NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	narrator, err := server.NewNarrator(cfg)
	if err != nil {
		closeSource()
		return nil, err
	}

	fetcher := fetchers.NewDataFetcher(source, chartsCfg)
	return &runner{
		cfg:       cfg,
		fetcher:   fetcher,
		dashboard: reports.NewDashboardService(charts.NewChartGenerator(fetcher, chartsCfg), fetcher, narrator),
		close:     closeSource,
	}, nil
}

func (r *runner) width(flag int) float64 {
	if flag > 0 {
		return float64(flag)
	}
	return float64(r.cfg.DefaultWidth)
}

func newExportCmd() *cobra.Command {
	var (
		out    string
		width  int
		mockup bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dashboard snapshot (HTML, SVG, PNG, JSON)",
		Long: "Renders all four charts once and stores a self-contained snapshot. " +
			"Without --out the snapshot goes where the server would put it " +
			"(GCS_BUCKET or EXPORT_DIR).",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := newRunner(ctx, mockup)
			if err != nil {
				return err
			}
			defer r.close()

			var store storage.StorageClient
			if out != "" {
				store, err = storage.NewStorageClient(ctx, storage.DeploymentLocal, out)
			} else {
				store, err = server.NewExportStorage(ctx, r.cfg)
			}
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := reports.NewExporter(r.dashboard, store).Export(ctx, r.width(width))
			if err != nil {
				return err
			}

			logger.Info("Snapshot written", map[string]interface{}{
				"folder":   result.FolderPath,
				"files":    len(result.Files),
				"duration": result.Duration,
			})
			for chart, msg := range result.Errors {
				logger.Warn("Chart rendered without data", map[string]interface{}{"chart": chart, "error": msg})
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.FolderPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "local directory for the snapshot (overrides EXPORT_DIR and GCS_BUCKET)")
	cmd.Flags().IntVar(&width, "width", 0, "container width in pixels (default DEFAULT_WIDTH)")
	cmd.Flags().BoolVar(&mockup, "mockup", false, "use the embedded sample datasets")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		out    string
		format string
		width  int
		mockup bool
	)

	cmd := &cobra.Command{
		Use:       "render CHART",
		Short:     "Render one chart as SVG or PNG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: charts.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			r, err := newRunner(ctx, mockup)
			if err != nil {
				return err
			}
			defer r.close()

			chartGen := r.dashboard.Charts()
			var buf bytes.Buffer
			switch format {
			case "svg":
				surface, err := chartGen.Render(ctx, name, r.width(width))
				if err != nil {
					return err
				}
				buf.WriteString(surface.SVG())
			case "png":
				if err := chartGen.RenderPNG(ctx, name, int(r.width(width)), &buf); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q (svg or png)", format)
			}

			if out == "" {
				out = name + "." + format
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default CHART.FORMAT)")
	cmd.Flags().StringVar(&format, "format", "svg", "svg or png")
	cmd.Flags().IntVar(&width, "width", 0, "container width in pixels (default DEFAULT_WIDTH)")
	cmd.Flags().BoolVar(&mockup, "mockup", false, "use the embedded sample datasets")
	return cmd
}
