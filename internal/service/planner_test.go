package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/handlers/validator"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

func newConfiguration(targets ...string) calculator.Configuration {
	return calculator.Configuration{
		Samples: calculator.SampleDesign{Targets: targets, Repeat: 3, Groups: []string{"ctrl", "treat"}},
		Recipe:  calculator.Recipe{Mix: 10, Primers: 1, CDNA: 2, Water: 5},
		Primers: calculator.Primers{
			Forward: calculator.Primer{Name: "fwd", Concentration: 10},
			Reverse: calculator.Primer{Name: "rev", Concentration: 10},
		},
	}
}

type stubRenderer struct{}

func (stubRenderer) SupportedFormat() types.ReportFormat { return "stub" }

func (stubRenderer) Render(data *types.ReportData) ([]byte, error) {
	return []byte(data.Timestamps.Generated), nil
}

var _ = Describe("PlannerService", func() {
	var (
		ctx         context.Context
		generatedAt time.Time
		svc         *service.PlannerService
	)

	BeforeEach(func() {
		ctx = context.TODO()
		generatedAt = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
		svc = service.NewPlannerService(service.WithClock(func() time.Time { return generatedAt }))
	})

	Context("Plan", func() {
		It("computes a single target plan", func() {
			plan, err := svc.Plan(ctx, newConfiguration("geneA"))
			Expect(err).To(BeNil())

			Expect(plan.GeneratedAt).To(Equal(generatedAt))
			Expect(plan.Result.TotalReactions).To(Equal(6))
			Expect(plan.Result.WorkingSolutions).To(HaveKeyWithValue("geneA", calculator.WorkingSolution{
				Mix: 60, ForwardPrimer: 6, ReversePrimer: 6, Water: 30, TotalVolume: 102,
			}))
			Expect(plan.Result.MasterMix.TotalVolume).To(Equal(102.0))
			Expect(plan.Result.TotalCDNAVolume).To(Equal(12.0))
		})

		It("computes a two target plan", func() {
			plan, err := svc.Plan(ctx, newConfiguration("geneA", "geneB"))
			Expect(err).To(BeNil())

			Expect(plan.Result.TotalReactions).To(Equal(12))
			Expect(plan.Result.WorkingSolutions).To(HaveLen(2))
			Expect(plan.Result.MasterMix).To(Equal(calculator.MasterMix{
				Mix: 120, ForwardPrimer: 12, ReversePrimer: 12, Water: 60, TotalVolume: 204,
			}))
			Expect(plan.Result.TotalCDNAVolume).To(Equal(24.0))
		})

		It("accepts a zero repeat", func() {
			cfg := newConfiguration("geneA")
			cfg.Samples.Repeat = 0

			plan, err := svc.Plan(ctx, cfg)
			Expect(err).To(BeNil())
			Expect(plan.Result.TotalReactions).To(Equal(0))
			Expect(plan.Result.WorkingSolutions["geneA"]).To(Equal(calculator.WorkingSolution{}))
		})

		It("rejects duplicate targets", func() {
			_, err := svc.Plan(ctx, newConfiguration("geneA", "geneA"))
			Expect(err).ToNot(BeNil())

			var invalid *service.ErrInvalidConfiguration
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Fields).ToNot(BeEmpty())
			Expect(service.IsBadRequest(err)).To(BeTrue())
		})

		It("rejects negative volumes", func() {
			cfg := newConfiguration("geneA")
			cfg.Recipe.Water = -1

			_, err := svc.Plan(ctx, cfg)
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("recipe.water"))
		})

		It("collapses duplicate targets when validation is disabled", func() {
			svc = service.NewPlannerService(service.WithoutValidation())
			Expect(svc.Validates()).To(BeFalse())

			plan, err := svc.Plan(ctx, newConfiguration("geneA", "geneA"))
			Expect(err).To(BeNil())
			Expect(plan.Result.TotalReactions).To(Equal(12))
			Expect(plan.Result.WorkingSolutions).To(HaveLen(1))
		})

		It("uses the provided validator", func() {
			svc = service.NewPlannerService(service.WithValidator(validator.NewConfigurationValidator()))
			Expect(svc.Validates()).To(BeTrue())

			_, err := svc.Plan(ctx, newConfiguration("geneA", ""))
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("samples.targets[1]"))
		})

		It("fails on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := svc.Plan(cctx, newConfiguration("geneA"))
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Context("Render", func() {
		It("renders the json wire shape", func() {
			plan, err := svc.Plan(ctx, newConfiguration("geneA"))
			Expect(err).To(BeNil())

			out, err := svc.Render(plan, service.ReportFormatJSON)
			Expect(err).To(BeNil())

			var doc api.CalculationResult
			Expect(json.Unmarshal(out, &doc)).To(Succeed())
			Expect(doc.TotalReactions).To(Equal(6))
			Expect(doc.TotalCDNAVolume).To(Equal(12.0))
		})

		It("renders every registered format", func() {
			plan, err := svc.Plan(ctx, newConfiguration("geneA", "geneB"))
			Expect(err).To(BeNil())

			Expect(svc.Formats()).To(ConsistOf(
				service.ReportFormatCSV, service.ReportFormatHTML, service.ReportFormatJSON,
				service.ReportFormatTable, service.ReportFormatXLSX, service.ReportFormatYAML,
			))
			for _, format := range svc.Formats() {
				out, err := svc.Render(plan, format)
				Expect(err).To(BeNil(), string(format))
				Expect(out).ToNot(BeEmpty(), string(format))
			}
		})

		It("rejects an unknown format", func() {
			plan, err := svc.Plan(ctx, newConfiguration("geneA"))
			Expect(err).To(BeNil())

			_, err = svc.Render(plan, "pdf")
			var unsupported *service.ErrUnsupportedFormat
			Expect(errors.As(err, &unsupported)).To(BeTrue())
			Expect(err.Error()).To(Equal("unsupported report format: pdf"))
		})

		It("refuses volumes that overflowed without validation", func() {
			svc = service.NewPlannerService(service.WithoutValidation())
			cfg := newConfiguration("geneA")
			cfg.Recipe.Mix = 1e308

			plan, err := svc.Plan(ctx, cfg)
			Expect(err).To(BeNil())

			for _, format := range svc.Formats() {
				_, err = svc.Render(plan, format)
				var nonFinite *service.ErrNonFiniteVolume
				Expect(errors.As(err, &nonFinite)).To(BeTrue(), string(format))
				Expect(nonFinite.Field).To(Equal("workingSolutions[geneA].mix"))
				Expect(service.IsBadRequest(err)).To(BeTrue())
			}
		})

		It("uses registered renderers and the plan timestamp", func() {
			reports := service.NewReportService()
			reports.Register(stubRenderer{})
			svc = service.NewPlannerService(
				service.WithReportService(reports),
				service.WithClock(func() time.Time { return generatedAt }),
			)

			plan, err := svc.Plan(ctx, newConfiguration("geneA"))
			Expect(err).To(BeNil())

			out, err := svc.Render(plan, "stub")
			Expect(err).To(BeNil())
			Expect(string(out)).To(Equal("2024-03-09"))
		})

		It("refuses a nil plan", func() {
			_, err := svc.Render(nil, service.ReportFormatJSON)
			Expect(err).ToNot(BeNil())
		})
	})
})
