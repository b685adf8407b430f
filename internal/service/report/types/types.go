package types

import (
	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
}

type ReportFormat string

const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatCSV   ReportFormat = "csv"
	ReportFormatHTML  ReportFormat = "html"
	ReportFormatXLSX  ReportFormat = "xlsx"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatYAML  ReportFormat = "yaml"
)

// ContentType returns the media type served for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatCSV:
		return "text/csv; charset=utf-8"
	case ReportFormatHTML:
		return "text/html; charset=utf-8"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatJSON:
		return "application/json"
	case ReportFormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Binary reports whether the rendered format cannot be written to a terminal.
func (f ReportFormat) Binary() bool {
	return f == ReportFormatXLSX
}

type ReportData struct {
	Configuration calculator.Configuration
	Result        calculator.CalculationResult
	// Solutions holds one entry per distinct target, in configuration order.
	Solutions  []TargetSolution
	Timestamps ReportTimestamps
}

type TargetSolution struct {
	Target string
	calculator.WorkingSolution
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}

type ReportTemplateData struct {
	GeneratedDate   string
	GeneratedTime   string
	Targets         int
	Groups          string
	Repeat          int
	TotalReactions  int
	ForwardPrimer   string
	ReversePrimer   string
	Solutions       []VolumeRow
	MasterMix       VolumeRow
	TotalCDNAVolume string
}

// VolumeRow is a breakdown with every volume already formatted.
type VolumeRow struct {
	Name          string
	Mix           string
	ForwardPrimer string
	ReversePrimer string
	Water         string
	TotalVolume   string
}
