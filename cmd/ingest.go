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
	"github.com/opendensity/density/infra/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Subscribe to occupancy dumps and store them locally",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("ingest").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
