package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	qpcrPlanner = "qpcr_planner"

	// Calculation metrics
	calculationsTotal   = "calculations_total"
	calculationReaction = "calculation_reactions"
	reportsTotal        = "reports_total"

	// Labels
	outcomeLabel = "outcome"
	formatLabel  = "format"

	// Outcomes
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
)

var calculationsTotalLabels = []string{
	outcomeLabel,
}

var reportsTotalLabels = []string{
	formatLabel,
}

/**
* Metrics definition
**/
var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: qpcrPlanner,
		Name:      calculationsTotal,
		Help:      "number of volume calculations partitioned by outcome",
	},
	calculationsTotalLabels,
)

var calculationReactionsMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: qpcrPlanner,
		Name:      calculationReaction,
		Help:      "total reactions of each successful calculation",
		// 96 and 384 are the common plate sizes
		Buckets: []float64{1, 8, 24, 48, 96, 192, 384, 768},
	},
)

var reportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: qpcrPlanner,
		Name:      reportsTotal,
		Help:      "number of rendered plans partitioned by format",
	},
	reportsTotalLabels,
)

func IncreaseCalculationsTotalMetric(outcome string) {
	labels := prometheus.Labels{
		outcomeLabel: outcome,
	}
	calculationsTotalMetric.With(labels).Inc()
}

func ObserveCalculationReactionsMetric(reactions int) {
	calculationReactionsMetric.Observe(float64(reactions))
}

func IncreaseReportsTotalMetric(format string) {
	labels := prometheus.Labels{
		formatLabel: format,
	}
	reportsTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(calculationReactionsMetric)
	prometheus.MustRegister(reportsTotalMetric)
	prometheus.MustRegister(totalUniqueVisitPerWeekMetric)
}
