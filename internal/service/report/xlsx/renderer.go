package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

const (
	SheetWorkingSolutions = "Working Solutions"
	SheetMasterMix        = "Master Mix"
	SheetDesign           = "Design"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWorkingSolutions); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, sheet := range []string{SheetMasterMix, SheetDesign} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := map[string][][]any{
		SheetWorkingSolutions: workingSolutionRows(data),
		SheetMasterMix:        masterMixRows(data),
		SheetDesign:           designRows(data),
	}
	for sheet, rows := range sheets {
		if err := writeRows(f, sheet, rows, headerStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func workingSolutionRows(data *types.ReportData) [][]any {
	rows := [][]any{{"Target", "Mix (ul)", "Forward Primer (ul)", "Reverse Primer (ul)", "Water (ul)", "Total (ul)"}}
	for _, s := range data.Solutions {
		rows = append(rows, []any{s.Target, s.Mix, s.ForwardPrimer, s.ReversePrimer, s.Water, s.TotalVolume})
	}
	return rows
}

func masterMixRows(data *types.ReportData) [][]any {
	m := data.Result.MasterMix
	return [][]any{
		{"Component", "Volume (ul)"},
		{"Mix", m.Mix},
		{"Forward Primer", m.ForwardPrimer},
		{"Reverse Primer", m.ReversePrimer},
		{"Water", m.Water},
		{"Total", m.TotalVolume},
		{"cDNA", data.Result.TotalCDNAVolume},
	}
}

func designRows(data *types.ReportData) [][]any {
	cfg := data.Configuration
	return [][]any{
		{"Parameter", "Value"},
		{"Targets", strings.Join(cfg.Samples.Targets, ", ")},
		{"Groups", strings.Join(cfg.Samples.Groups, ", ")},
		{"Repeat", cfg.Samples.Repeat},
		{"Total Reactions", data.Result.TotalReactions},
		{"Mix per Reaction (ul)", cfg.Recipe.Mix},
		{"Primers per Reaction (ul)", cfg.Recipe.Primers},
		{"cDNA per Reaction (ul)", cfg.Recipe.CDNA},
		{"Water per Reaction (ul)", cfg.Recipe.Water},
		{"Forward Primer", cfg.Primers.Forward.Name},
		{"Forward Concentration (uM)", cfg.Primers.Forward.Concentration},
		{"Reverse Primer", cfg.Primers.Reverse.Name},
		{"Reverse Concentration (uM)", cfg.Primers.Reverse.Concentration},
		{"Generated", strings.TrimSpace(data.Timestamps.Generated + " " + data.Timestamps.GeneratedTime)},
	}
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", last, 22)
}
