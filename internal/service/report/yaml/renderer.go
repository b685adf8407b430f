package yaml

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/kubev2v/qpcr-planner/internal/service/mappers"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatYAML
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(mappers.CalculationResultToAPI(data.Result))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return out, nil
}
