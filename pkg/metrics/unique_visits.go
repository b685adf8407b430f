package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueVisits struct {
	counter       prometheus.Gauge
	visitorsCache map[string]struct{}
	mu            sync.RWMutex
}

// Visits
const visitCountPerWeek = "visits_count_per_week"

var totalUniqueVisitPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: qpcrPlanner,
		Name:      visitCountPerWeek,
		Help:      "number of distinct clients that requested a calculation this week",
	},
)

// UniqueVisitsPerWeek is reset weekly by the metrics server.
var UniqueVisitsPerWeek = newUniqueVisits(totalUniqueVisitPerWeekMetric)

func newUniqueVisits(counter prometheus.Gauge) *uniqueVisits {
	return &uniqueVisits{
		counter:       counter,
		visitorsCache: make(map[string]struct{}),
	}
}

func (v *uniqueVisits) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visitorsCache = make(map[string]struct{})
	v.counter.Set(0)
}

func (v *uniqueVisits) IncreaseTotalUniqueVisit(visitor string) {
	if visitor == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.visitorsCache[visitor]; exists {
		return
	}

	v.visitorsCache[visitor] = struct{}{}
	v.counter.Inc()
}

func (v *uniqueVisits) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.visitorsCache)
}
