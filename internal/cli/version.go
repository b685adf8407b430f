package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kubev2v/qpcr-planner/pkg/version"
)

type VersionOptions struct {
	out io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print qPCR planner version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	_, err := fmt.Fprintf(o.out, "qPCR Planner Version: %s\n", versionInfo.String())
	return err
}
