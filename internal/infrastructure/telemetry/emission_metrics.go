package telemetry

import (
	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EmissionMetrics counts agenda events produced by domain mutations and the
// emissions that were degraded. It satisfies the emitter's recorder interface.
type EmissionMetrics struct {
	Emitted *prometheus.CounterVec
	Failed  *prometheus.CounterVec
}

// NewEmissionMetrics registers the emission counters on reg
func NewEmissionMetrics(reg prometheus.Registerer) *EmissionMetrics {
	factory := promauto.With(reg)
	return &EmissionMetrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bonito_agenda_events_emitted_total",
			Help: "Total number of agenda events persisted by the emitter, by kind",
		}, []string{"kind"}),
		Failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bonito_agenda_emission_failures_total",
			Help: "Total number of agenda events that could not be built or persisted, by kind and stage",
		}, []string{"kind", "stage"}),
	}
}

// EventsEmitted adds n to the emitted counter for kind
func (m *EmissionMetrics) EventsEmitted(kind agenda.Kind, n int) {
	m.Emitted.WithLabelValues(string(kind)).Add(float64(n))
}

// EmissionFailed increments the failure counter for kind at stage
func (m *EmissionMetrics) EmissionFailed(kind agenda.Kind, stage string) {
	m.Failed.WithLabelValues(string(kind), stage).Inc()
}
