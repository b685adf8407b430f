package json

import (
	"encoding/json"
	"fmt"

	"github.com/kubev2v/qpcr-planner/internal/service/mappers"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type Renderer struct {
	indent bool
}

func NewRenderer() *Renderer {
	return &Renderer{indent: true}
}

// NewCompactRenderer renders without indentation.
func NewCompactRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatJSON
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	doc := mappers.CalculationResultToAPI(data.Result)

	var (
		out []byte
		err error
	)
	if r.indent {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(out, '\n'), nil
}
