package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:          "qpcr-planner-api",
	Short:        "HTTP API of the qPCR reagent planner",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
}
