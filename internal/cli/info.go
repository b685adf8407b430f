package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/kubev2v/qpcr-planner/pkg/version"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var legalOutputTypes = []string{jsonFormat, yamlFormat}

type InfoOptions struct {
	GlobalOptions
	Output string
	Remote bool

	out io.Writer
}

func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        "",
		Remote:        false,
	}
}

func NewCmdInfo() *cobra.Command {
	o := DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print qPCR planner information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *InfoOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Get information from the remote service")
}

func (o *InfoOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *InfoOptions) Validate() error {
	if err := o.GlobalOptions.Validate([]string{}); err != nil {
		return err
	}
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// InfoResponse represents the information we want to display
type InfoResponse struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

func (o *InfoOptions) Run(ctx context.Context, args []string) error {
	var info InfoResponse

	if o.Remote {
		remote, err := o.Client().GetInfo(ctx)
		if err != nil {
			return fmt.Errorf("failed to get remote info: %w", err)
		}
		info = InfoResponse{GitCommit: remote.GitCommit, VersionName: remote.VersionName}
	} else {
		versionInfo := version.Get()
		info = InfoResponse{
			GitCommit:   versionInfo.GitCommit,
			VersionName: versionInfo.GitVersion,
		}
	}

	return o.printInfo(info)
}

func (o *InfoOptions) printInfo(info InfoResponse) error {
	switch o.Output {
	case jsonFormat:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal info to JSON: %w", err)
		}
		fmt.Fprintln(o.out, string(data))
	case yamlFormat:
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to marshal info to YAML: %w", err)
		}
		fmt.Fprint(o.out, string(data))
	default:
		source := "Local CLI"
		if o.Remote {
			source = "Remote Service"
		}
		fmt.Fprintf(o.out, "qPCR Planner %s Information:\n", source)
		fmt.Fprintf(o.out, "  Version Name: %s\n", info.VersionName)
		fmt.Fprintf(o.out, "  Git Commit:   %s\n", info.GitCommit)
	}

	return nil
}
