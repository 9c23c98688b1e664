package agenda

import "github.com/bonitoviento/backend/internal/domain/agenda"

// EmissionRecorder receives emission outcomes for monitoring
type EmissionRecorder interface {
	EventsEmitted(kind agenda.Kind, n int)
	EmissionFailed(kind agenda.Kind, stage string)
}

type nopRecorder struct{}

func (nopRecorder) EventsEmitted(agenda.Kind, int)     {}
func (nopRecorder) EmissionFailed(agenda.Kind, string) {}
