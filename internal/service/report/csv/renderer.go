package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	var csvRows [][]string

	csvRows = append(csvRows, []string{"QPCR REAGENT PLAN"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addDesign(csvRows, data.Configuration, data.Result)
	csvRows = r.addWorkingSolutions(csvRows, data.Solutions)
	csvRows = r.addMasterMix(csvRows, data.Result)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addDesign(csvRows [][]string, cfg calculator.Configuration, result calculator.CalculationResult) [][]string {
	csvRows = append(csvRows, []string{"EXPERIMENT DESIGN"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Parameter", "Value"})
	csvRows = append(csvRows, []string{"Targets", strings.Join(cfg.Samples.Targets, " ")})
	csvRows = append(csvRows, []string{"Groups", strings.Join(cfg.Samples.Groups, " ")})
	csvRows = append(csvRows, []string{"Repeat", strconv.Itoa(cfg.Samples.Repeat)})
	csvRows = append(csvRows, []string{"Total Reactions", strconv.Itoa(result.TotalReactions)})
	csvRows = append(csvRows, []string{"Forward Primer",
		fmt.Sprintf("%s (%g uM)", cfg.Primers.Forward.Name, cfg.Primers.Forward.Concentration)})
	csvRows = append(csvRows, []string{"Reverse Primer",
		fmt.Sprintf("%s (%g uM)", cfg.Primers.Reverse.Name, cfg.Primers.Reverse.Concentration)})
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addWorkingSolutions(csvRows [][]string, solutions []types.TargetSolution) [][]string {
	csvRows = append(csvRows, []string{"WORKING SOLUTIONS"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Target", "Mix (ul)", "Forward Primer (ul)", "Reverse Primer (ul)", "Water (ul)", "Total (ul)"})

	for _, s := range solutions {
		csvRows = append(csvRows, []string{
			s.Target,
			formatFloat(s.Mix),
			formatFloat(s.ForwardPrimer),
			formatFloat(s.ReversePrimer),
			formatFloat(s.Water),
			formatFloat(s.TotalVolume),
		})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addMasterMix(csvRows [][]string, result calculator.CalculationResult) [][]string {
	csvRows = append(csvRows, []string{"MASTER MIX"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Component", "Volume (ul)"})
	csvRows = append(csvRows, []string{"Mix", formatFloat(result.MasterMix.Mix)})
	csvRows = append(csvRows, []string{"Forward Primer", formatFloat(result.MasterMix.ForwardPrimer)})
	csvRows = append(csvRows, []string{"Reverse Primer", formatFloat(result.MasterMix.ReversePrimer)})
	csvRows = append(csvRows, []string{"Water", formatFloat(result.MasterMix.Water)})
	csvRows = append(csvRows, []string{"Total", formatFloat(result.MasterMix.TotalVolume)})
	csvRows = append(csvRows, []string{"cDNA", formatFloat(result.TotalCDNAVolume)})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// formatFloat keeps the full precision so the sheet can be recomputed.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
