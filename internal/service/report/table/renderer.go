package table

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatTable
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	cfg := data.Configuration

	fmt.Fprintf(&buf, "Total reactions: %d (%d groups x %d repeats x %d targets)\n",
		data.Result.TotalReactions, len(cfg.Samples.Groups), cfg.Samples.Repeat, len(data.Solutions))
	fmt.Fprintf(&buf, "Groups: %s\n\n", strings.Join(cfg.Samples.Groups, ", "))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TARGET\tMIX\tFORWARD\tREVERSE\tWATER\tTOTAL\t")
	for _, s := range data.Solutions {
		writeRow(w, s.Target, calculator.MasterMix(s.WorkingSolution))
	}
	writeRow(w, "MASTER MIX", data.Result.MasterMix)
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}

	fmt.Fprintf(&buf, "\nForward primer: %s (%g uM)\n", cfg.Primers.Forward.Name, cfg.Primers.Forward.Concentration)
	fmt.Fprintf(&buf, "Reverse primer: %s (%g uM)\n", cfg.Primers.Reverse.Name, cfg.Primers.Reverse.Concentration)
	fmt.Fprintf(&buf, "cDNA: %s\n", calculator.FormatVolume(data.Result.TotalCDNAVolume))

	return buf.Bytes(), nil
}

func writeRow(w *tabwriter.Writer, name string, m calculator.MasterMix) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		name,
		calculator.FormatVolume(m.Mix),
		calculator.FormatVolume(m.ForwardPrimer),
		calculator.FormatVolume(m.ReversePrimer),
		calculator.FormatVolume(m.Water),
		calculator.FormatVolume(m.TotalVolume),
	)
}
