package main

import (
	"context"
	"fmt"
	"invoicing/internal/app"
	"invoicing/internal/config"
	"invoicing/internal/infrastructure/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

type cli struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cli{}

	rootCmd := &cobra.Command{
		Use:           "invoicing",
		Short:         "Invoice lifecycle and document service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd(rt))
	rootCmd.AddCommand(migrateCmd(rt))
	rootCmd.AddCommand(renderCmd(rt))

	return rootCmd
}

func (rt *cli) load() error {
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	rt.cfg = cfg
	rt.logger = logger
	return nil
}

func (rt *cli) app(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, rt.cfg, rt.logger)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	return a, nil
}
