package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/kubev2v/qpcr-planner/internal/api_server"
	"github.com/kubev2v/qpcr-planner/internal/config"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the qPCR planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service...")
		zap.S().Infof("Using config: %s", cfg)
		defer zap.S().Info("API service stopped")

		var opts []service.PlannerOption
		if !cfg.Service.StrictValidation {
			zap.S().Warn("strict validation disabled: configurations are passed to the calculator as-is")
			opts = append(opts, service.WithoutValidation())
		}
		plannerSrv := service.NewPlannerService(opts...)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		errs := make(chan error, 2)

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				errs <- fmt.Errorf("creating listener: %w", err)
				return
			}

			server := apiserver.New(cfg, listener, plannerSrv, nil)
			if err := server.Run(ctx); err != nil {
				errs <- fmt.Errorf("running api server: %w", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				errs <- fmt.Errorf("creating metrics listener: %w", err)
				return
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				errs <- fmt.Errorf("running metrics server: %w", err)
			}
		}()

		<-ctx.Done()

		select {
		case err := <-errs:
			zap.S().Errorw("server failed", "error", err)
			return err
		default:
			return nil
		}
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
