package report

import (
	"time"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type StandardPlanProcessor struct{}

func NewStandardPlanProcessor() *StandardPlanProcessor {
	return &StandardPlanProcessor{}
}

// ProcessPlan lays out a calculation for rendering.
func (p *StandardPlanProcessor) ProcessPlan(cfg calculator.Configuration, result calculator.CalculationResult, generatedAt time.Time) *types.ReportData {
	targets := calculator.OrderedTargets(cfg.Samples)
	solutions := make([]types.TargetSolution, 0, len(targets))
	for _, target := range targets {
		solutions = append(solutions, types.TargetSolution{
			Target:          target,
			WorkingSolution: result.WorkingSolutions[target],
		})
	}

	return &types.ReportData{
		Configuration: cfg,
		Result:        result,
		Solutions:     solutions,
		Timestamps:    p.generateTimestamps(generatedAt),
	}
}

func (p *StandardPlanProcessor) generateTimestamps(t time.Time) types.ReportTimestamps {
	if t.IsZero() {
		t = time.Now()
	}
	return types.ReportTimestamps{
		Generated:     t.Format("2006-01-02"),
		GeneratedTime: t.Format("15:04:05"),
	}
}
