package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/handlers/validator"
	"github.com/kubev2v/qpcr-planner/pkg/metrics"
)

// Plan is a calculation together with the configuration it was computed from.
type Plan struct {
	Configuration calculator.Configuration
	Result        calculator.CalculationResult
	GeneratedAt   time.Time
}

// PlannerService validates configurations, runs the calculator and renders the outcome.
type PlannerService struct {
	validator *validator.Validator
	reports   *ReportService
	now       func() time.Time
}

type PlannerOption func(*PlannerService)

// WithValidator replaces the default configuration validator.
func WithValidator(v *validator.Validator) PlannerOption {
	return func(s *PlannerService) {
		s.validator = v
	}
}

// WithoutValidation passes configurations straight to the calculator.
func WithoutValidation() PlannerOption {
	return func(s *PlannerService) {
		s.validator = nil
	}
}

func WithReportService(r *ReportService) PlannerOption {
	return func(s *PlannerService) {
		s.reports = r
	}
}

func WithClock(now func() time.Time) PlannerOption {
	return func(s *PlannerService) {
		s.now = now
	}
}

func NewPlannerService(opts ...PlannerOption) *PlannerService {
	s := &PlannerService{
		validator: validator.NewConfigurationValidator(),
		reports:   NewReportService(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PlannerService) Validates() bool {
	return s.validator != nil
}

// Plan computes the reagent volumes for cfg.
func (s *PlannerService) Plan(ctx context.Context, cfg calculator.Configuration) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := zap.S().Named("planner_service")

	if s.validator != nil {
		if err := s.validator.ValidateConfiguration(cfg); err != nil {
			metrics.IncreaseCalculationsTotalMetric(metrics.OutcomeInvalid)
			logger.Debugw("configuration rejected", "error", err)
			return nil, fromValidationError(err)
		}
	}

	result := calculator.Calculate(cfg)

	metrics.IncreaseCalculationsTotalMetric(metrics.OutcomeSuccess)
	metrics.ObserveCalculationReactionsMetric(result.TotalReactions)
	logger.Debugw("plan computed",
		"targets", len(result.WorkingSolutions),
		"total_reactions", result.TotalReactions,
		"master_mix_volume", result.MasterMix.TotalVolume)

	return &Plan{
		Configuration: cfg,
		Result:        result,
		GeneratedAt:   s.now(),
	}, nil
}

// Render renders plan in the requested format.
func (s *PlannerService) Render(plan *Plan, format ReportFormat) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("no plan to render")
	}

	out, err := s.reports.GenerateReport(plan.Configuration, plan.Result, plan.GeneratedAt, format)
	if err != nil {
		return nil, err
	}

	metrics.IncreaseReportsTotalMetric(string(format))
	return out, nil
}

// Formats lists the formats Render accepts.
func (s *PlannerService) Formats() []ReportFormat {
	return s.reports.Formats()
}
