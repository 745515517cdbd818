package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opendensity/density/app"
	"github.com/opendensity/density/config"
	corechart "github.com/opendensity/density/core/chart"
	"github.com/opendensity/density/core/model"
)

var chartFloor string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render observed versus predicted occupancy for a floor",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartFloor, "floor", "f", "", "floor to chart (group name)")
	_ = chartCmd.MarkFlagRequired("floor")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	src, err := app.NewSource(cfg)
	if err != nil {
		return fmt.Errorf("occupancy source: %w", err)
	}
	predictor, err := app.NewPredictor(cfg, src)
	if err != nil {
		return err
	}

	table, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load occupancy: %w", err)
	}
	observed, err := table.Observed(chartFloor)
	if err != nil {
		return err
	}
	observed = trimWindow(observed, time.Duration(cfg.Chart.WindowHours)*time.Hour)

	comparison, err := corechart.BuildComparison(ctx, observed, predictor, cfg.Chart.Horizon())
	if err != nil {
		return err
	}
	out, err := app.NewRenderer(cfg).Render(comparison)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	fmt.Println(out)
	return nil
}

// trimWindow drops observations older than window before the series' last
// instant. An empty series passes through; the comparison builder rejects it
// with a proper error.
func trimWindow(s model.Series, window time.Duration) model.Series {
	if s.Len() == 0 {
		return s
	}
	cutoff := s.Index.Last().Add(-window)
	start := 0
	for start < len(s.Index) && s.Index[start].Before(cutoff) {
		start++
	}
	return model.Series{Name: s.Name, Index: s.Index[start:], Values: s.Values[start:]}
}
