package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"smart-fuel-crm/internal/app"
	"smart-fuel-crm/internal/config"
	"smart-fuel-crm/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "crmctl runs CRM maintenance tasks against the configured database",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd, sendFollowUpsCmd, migrateDataCmd)
}

// withApp loads config, initializes the logger and hands a wired App to fn.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg := config.LoadConfig()
	if err := app.InitLogger(cfg); err != nil {
		return err
	}
	defer logger.Sync()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
