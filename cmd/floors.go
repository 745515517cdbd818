package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opendensity/density/app"
	"github.com/opendensity/density/config"
)

var floorsCmd = &cobra.Command{
	Use:   "floors",
	Short: "List floors present in the occupancy data",
	RunE:  runFloors,
}

func init() {
	rootCmd.AddCommand(floorsCmd)
}

func runFloors(cmd *cobra.Command, args []string) error {
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
	table, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load occupancy: %w", err)
	}
	for _, floor := range table.Floors() {
		fmt.Println(floor)
	}
	return nil
}
