package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/internal/service/mappers"
)

var legalReportFormats = []string{
	string(service.ReportFormatTable),
	string(service.ReportFormatCSV),
	string(service.ReportFormatHTML),
	string(service.ReportFormatXLSX),
	string(service.ReportFormatJSON),
	string(service.ReportFormatYAML),
}

type CalculateOptions struct {
	GlobalOptions
	File       string
	Output     string
	OutputFile string
	NoValidate bool
	Remote     bool

	Targets              []string
	Groups               []string
	Repeat               int
	Mix                  float64
	Primers              float64
	CDNA                 float64
	Water                float64
	ForwardName          string
	ForwardConcentration float64
	ReverseName          string
	ReverseConcentration float64

	changed map[string]bool
	in      io.Reader
	out     io.Writer
}

func DefaultCalculateOptions() *CalculateOptions {
	return &CalculateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        string(service.ReportFormatTable),
	}
}

func NewCmdCalculate() *cobra.Command {
	o := DefaultCalculateOptions()
	cmd := &cobra.Command{
		Use:   "calculate [flags]",
		Short: "Calculate the reagent volumes of a qPCR experiment",
		Example: `  qpcr-planner calculate -f plan.yaml
  qpcr-planner calculate -f plan.yaml -o xlsx --output-file plan.xlsx
  cat plan.json | qpcr-planner calculate -f - -o json
  qpcr-planner calculate --targets geneA,geneB --groups ctrl,treat --repeat 3 \
    --mix 10 --primers 1 --cdna 2 --water 5 \
    --forward-name fwd --forward-concentration 10 --reverse-name rev --reverse-concentration 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CalculateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.File, "file", "f", o.File, "Configuration document (YAML or JSON). Use - to read stdin.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalReportFormats, ", ")))
	fs.StringVar(&o.OutputFile, "output-file", o.OutputFile, "Write the plan to this file instead of stdout")
	fs.BoolVar(&o.NoValidate, "no-validate", o.NoValidate, "Skip the configuration checks and calculate whatever is given")
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Calculate on the remote service")

	fs.StringSliceVar(&o.Targets, "targets", o.Targets, "Target genes, comma separated")
	fs.StringSliceVar(&o.Groups, "groups", o.Groups, "Sample groups, comma separated")
	fs.IntVar(&o.Repeat, "repeat", o.Repeat, "Technical replicates per group")
	fs.Float64Var(&o.Mix, "mix", o.Mix, "Mix volume per reaction (ul)")
	fs.Float64Var(&o.Primers, "primers", o.Primers, "Volume of each primer per reaction (ul)")
	fs.Float64Var(&o.CDNA, "cdna", o.CDNA, "cDNA volume per reaction (ul)")
	fs.Float64Var(&o.Water, "water", o.Water, "Water volume per reaction (ul)")
	fs.StringVar(&o.ForwardName, "forward-name", o.ForwardName, "Forward primer name")
	fs.Float64Var(&o.ForwardConcentration, "forward-concentration", o.ForwardConcentration, "Forward primer concentration (uM)")
	fs.StringVar(&o.ReverseName, "reverse-name", o.ReverseName, "Reverse primer name")
	fs.Float64Var(&o.ReverseConcentration, "reverse-concentration", o.ReverseConcentration, "Reverse primer concentration (uM)")
}

func (o *CalculateOptions) Complete(cmd *cobra.Command, args []string) error {
	o.in = cmd.InOrStdin()
	o.out = cmd.OutOrStdout()
	o.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		o.changed[f.Name] = true
	})
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *CalculateOptions) Validate(args []string) error {
	if o.Remote {
		if err := o.GlobalOptions.Validate(args); err != nil {
			return err
		}
	}
	if !funk.Contains(legalReportFormats, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalReportFormats, ", "))
	}
	if service.ReportFormat(o.Output).Binary() && o.OutputFile == "" {
		return fmt.Errorf("output format %s requires --output-file", o.Output)
	}
	if o.File == "" && !o.hasOverrides() {
		return fmt.Errorf("a configuration document (--file) or configuration flags are required")
	}
	return nil
}

func (o *CalculateOptions) Run(ctx context.Context, args []string) error {
	logger := zap.S().Named("calculate")

	cfg, err := o.configuration()
	if err != nil {
		return err
	}

	var out []byte
	if o.Remote {
		logger.Debugw("calculating on remote service", "server", o.ServerUrl)
		out, err = o.Client().Calculate(ctx, mappers.ConfigurationToAPI(cfg), o.Output)
		if err != nil {
			return fmt.Errorf("failed to calculate on remote service: %w", err)
		}
	} else {
		out, err = o.calculate(ctx, cfg)
		if err != nil {
			return err
		}
	}

	if o.OutputFile != "" {
		if err := os.WriteFile(o.OutputFile, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.OutputFile, err)
		}
		logger.Infof("plan written to %s", o.OutputFile)
		return nil
	}

	_, err = o.out.Write(out)
	return err
}

func (o *CalculateOptions) calculate(ctx context.Context, cfg calculator.Configuration) ([]byte, error) {
	var opts []service.PlannerOption
	if o.NoValidate {
		opts = append(opts, service.WithoutValidation())
	}
	planner := service.NewPlannerService(opts...)

	plan, err := planner.Plan(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return planner.Render(plan, service.ReportFormat(o.Output))
}

// configuration loads the document, if any, and applies the flags on top of it.
func (o *CalculateOptions) configuration() (calculator.Configuration, error) {
	cfg := calculator.Configuration{
		Samples: calculator.SampleDesign{Targets: []string{}, Groups: []string{}},
	}
	if o.File != "" {
		loaded, err := service.LoadConfiguration(o.File, o.in)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if o.changed["targets"] {
		cfg.Samples.Targets = append([]string{}, o.Targets...)
	}
	if o.changed["groups"] {
		cfg.Samples.Groups = append([]string{}, o.Groups...)
	}
	if o.changed["repeat"] {
		cfg.Samples.Repeat = o.Repeat
	}
	if o.changed["mix"] {
		cfg.Recipe.Mix = o.Mix
	}
	if o.changed["primers"] {
		cfg.Recipe.Primers = o.Primers
	}
	if o.changed["cdna"] {
		cfg.Recipe.CDNA = o.CDNA
	}
	if o.changed["water"] {
		cfg.Recipe.Water = o.Water
	}
	if o.changed["forward-name"] {
		cfg.Primers.Forward.Name = o.ForwardName
	}
	if o.changed["forward-concentration"] {
		cfg.Primers.Forward.Concentration = o.ForwardConcentration
	}
	if o.changed["reverse-name"] {
		cfg.Primers.Reverse.Name = o.ReverseName
	}
	if o.changed["reverse-concentration"] {
		cfg.Primers.Reverse.Concentration = o.ReverseConcentration
	}

	return cfg, nil
}

var configurationFlags = []string{
	"targets", "groups", "repeat", "mix", "primers", "cdna", "water",
	"forward-name", "forward-concentration", "reverse-name", "reverse-concentration",
}

func (o *CalculateOptions) hasOverrides() bool {
	for _, name := range configurationFlags {
		if o.changed[name] {
			return true
		}
	}
	return false
}
