package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/qpcr-planner/internal/cli"
	"github.com/kubev2v/qpcr-planner/pkg/log"
)

func main() {
	command := NewPlannerCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:          "qpcr-planner [flags] [options]",
		Short:        "qpcr-planner calculates reagent volumes for qPCR experiments.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries the rendered plan
			logger := log.InitLog(log.ParseLevel(logLevel), log.WithOutputPaths("stderr"))
			zap.ReplaceGlobals(logger)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(cli.NewCmdCalculate())
	cmd.AddCommand(cli.NewCmdGreet())
	cmd.AddCommand(cli.NewCmdInfo())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
