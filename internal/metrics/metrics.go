package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Check outcomes.
const (
	OutcomeProfane = "profane"
	OutcomeClean   = "clean"
	OutcomeError   = "error"
)

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profanity_checks_total",
			Help: "Total profanity checks by outcome",
		},
		[]string{"outcome"},
	)

	unitScoringSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profanity_unit_scoring_seconds",
			Help:    "Latency of a single unit lookup against the reference corpus",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "result"},
	)

	flaggedUnitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profanity_flagged_units_total",
			Help: "Units whose score crossed their kind's threshold",
		},
		[]string{"kind"},
	)

	indexUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "profanity_index_up",
		Help: "1 if the last probe of the vector index succeeded",
	})

	registerOnce sync.Once
)

// Init registers the collectors with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(checksTotal, unitScoringSeconds, flaggedUnitsTotal, indexUp)
	})
}

// RecordCheck counts one finished check.
func RecordCheck(outcome string) {
	checksTotal.WithLabelValues(outcome).Inc()
}

// ObserveScoring records the latency of one unit lookup.
func ObserveScoring(kind string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	unitScoringSeconds.WithLabelValues(kind, result).Observe(elapsed.Seconds())
}

// RecordFlagged counts a unit that crossed its threshold.
func RecordFlagged(kind string) {
	flaggedUnitsTotal.WithLabelValues(kind).Inc()
}

// SetIndexUp publishes the latest index probe result.
func SetIndexUp(up bool) {
	if up {
		indexUp.Set(1)
		return
	}
	indexUp.Set(0)
}
