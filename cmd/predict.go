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
	"github.com/opendensity/density/core/model"
)

var predictFloor string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print predicted occupancy for the coming horizon",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&predictFloor, "floor", "f", "", "floor to predict (group name)")
	_ = predictCmd.MarkFlagRequired("floor")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
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

	h := cfg.Chart.Horizon()
	// Dump times are stored in UTC; anchor targets on the next UTC step
	// boundary so they line up with the sampling grid.
	start := time.Now().UTC().Truncate(h.Step).Add(h.Step)
	targets := model.FixedIndex(start, h.Step, h.Points)

	series, err := predictor.Predict(ctx, predictFloor, targets)
	if err != nil {
		return fmt.Errorf("predict %q: %w", predictFloor, err)
	}
	for i, at := range series.Index {
		fmt.Printf("%s  %6.1f\n", at.Format("Mon 2006-01-02 15:04"), series.Values[i])
	}
	return nil
}
