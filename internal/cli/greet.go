package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubev2v/qpcr-planner/internal/greeting"
)

type GreetOptions struct {
	out io.Writer
}

func DefaultGreetOptions() *GreetOptions {
	return &GreetOptions{}
}

func NewCmdGreet() *cobra.Command {
	o := DefaultGreetOptions()
	cmd := &cobra.Command{
		Use:   "greet NAME",
		Short: "Print a greeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *GreetOptions) Validate(args []string) error {
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}

func (o *GreetOptions) Run(ctx context.Context, args []string) error {
	_, err := fmt.Fprintln(o.out, greeting.Greet(args[0]))
	return err
}
