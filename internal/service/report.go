package service

import (
	"slices"
	"time"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service/report"
	"github.com/kubev2v/qpcr-planner/internal/service/report/csv"
	"github.com/kubev2v/qpcr-planner/internal/service/report/html"
	"github.com/kubev2v/qpcr-planner/internal/service/report/json"
	"github.com/kubev2v/qpcr-planner/internal/service/report/table"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
	"github.com/kubev2v/qpcr-planner/internal/service/report/xlsx"
	"github.com/kubev2v/qpcr-planner/internal/service/report/yaml"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportData = types.ReportData

const (
	ReportFormatTable = types.ReportFormatTable
	ReportFormatCSV   = types.ReportFormatCSV
	ReportFormatHTML  = types.ReportFormatHTML
	ReportFormatXLSX  = types.ReportFormatXLSX
	ReportFormatJSON  = types.ReportFormatJSON
	ReportFormatYAML  = types.ReportFormatYAML
)

type ReportService struct {
	processor *report.StandardPlanProcessor
	renderers map[types.ReportFormat]types.ReportRenderer
}

func NewReportService() *ReportService {
	service := &ReportService{
		processor: report.NewStandardPlanProcessor(),
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
	}

	for _, renderer := range []types.ReportRenderer{
		table.NewRenderer(),
		csv.NewRenderer(),
		html.NewRenderer(),
		xlsx.NewRenderer(),
		json.NewRenderer(),
		yaml.NewRenderer(),
	} {
		service.Register(renderer)
	}

	return service
}

// Register adds or replaces the renderer for its format.
func (r *ReportService) Register(renderer types.ReportRenderer) {
	r.renderers[renderer.SupportedFormat()] = renderer
}

// Formats lists the registered formats in lexical order.
func (r *ReportService) Formats() []types.ReportFormat {
	formats := make([]types.ReportFormat, 0, len(r.renderers))
	for format := range r.renderers {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func (r *ReportService) GenerateReport(cfg calculator.Configuration, result calculator.CalculationResult, generatedAt time.Time, format types.ReportFormat) ([]byte, error) {
	renderer, exists := r.renderers[format]
	if !exists {
		return nil, NewErrUnsupportedFormat(format)
	}

	return renderer.Render(r.processor.ProcessPlan(cfg, result, generatedAt))
}
