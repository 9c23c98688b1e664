package docstore

import (
	"encoding/json"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// eventDocument is the stored shape of an audit event. IDs are kept as
// strings; the snapshot is kept as the JSON text it was emitted with.
type eventDocument struct {
	ID               string       `bson:"_id"`
	OccursAt         time.Time    `bson:"occurs_at"`
	Kind             string       `bson:"kind"`
	Subkind          string       `bson:"subkind,omitempty"`
	Title            string       `bson:"title,omitempty"`
	Description      string       `bson:"description"`
	Location         string       `bson:"location,omitempty"`
	Status           string       `bson:"status"`
	DueAt            *time.Time   `bson:"due_at,omitempty"`
	FulfilledBy      string       `bson:"fulfilled_by,omitempty"`
	FulfillmentNotes string       `bson:"fulfillment_notes,omitempty"`
	FulfilledAt      *time.Time   `bson:"fulfilled_at,omitempty"`
	Ref              *refDocument `bson:"ref,omitempty"`
	Action           string       `bson:"action,omitempty"`
	Snapshot         string       `bson:"snapshot,omitempty"`
	CreatedBy        string       `bson:"created_by,omitempty"`
	CreatedAt        time.Time    `bson:"created_at"`
	UpdatedAt        time.Time    `bson:"updated_at"`
}

type refDocument struct {
	Kind string `bson:"kind"`
	ID   string `bson:"id"`
}

func documentFromDomain(e *agenda.AuditEvent) eventDocument {
	doc := eventDocument{
		ID:               e.ID.String(),
		OccursAt:         e.OccursAt.UTC(),
		Kind:             string(e.Kind),
		Subkind:          e.Subkind,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		Status:           string(e.Status),
		DueAt:            utcPtr(e.DueAt),
		FulfilledBy:      e.FulfilledBy,
		FulfillmentNotes: e.FulfillmentNotes,
		FulfilledAt:      utcPtr(e.FulfilledAt),
		Action:           string(e.Action),
		Snapshot:         string(e.Snapshot),
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt.UTC(),
		UpdatedAt:        e.UpdatedAt.UTC(),
	}
	if doc.Status == "" {
		doc.Status = string(agenda.StatusPending)
	}
	if ref := e.BackReference(); ref != nil {
		doc.Ref = &refDocument{Kind: string(ref.Kind), ID: ref.ID.String()}
	}
	return doc
}

func (d eventDocument) toDomain() (*agenda.AuditEvent, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	e := agenda.AuditEvent{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt.UTC(),
			UpdatedAt: d.UpdatedAt.UTC(),
		},
		OccursAt:         d.OccursAt.UTC(),
		Kind:             agenda.Kind(d.Kind),
		Subkind:          d.Subkind,
		Title:            d.Title,
		Description:      d.Description,
		Location:         d.Location,
		Status:           agenda.Status(d.Status),
		DueAt:            utcPtr(d.DueAt),
		FulfilledBy:      d.FulfilledBy,
		FulfillmentNotes: d.FulfillmentNotes,
		FulfilledAt:      utcPtr(d.FulfilledAt),
		Action:           agenda.Action(d.Action),
		CreatedBy:        d.CreatedBy,
	}
	if d.Snapshot != "" {
		e.Snapshot = json.RawMessage(d.Snapshot)
	}

	var ref *agenda.BackReference
	if d.Ref != nil {
		refID, err := uuid.Parse(d.Ref.ID)
		if err != nil {
			return nil, err
		}
		ref = &agenda.BackReference{Kind: agenda.RefKind(d.Ref.Kind), ID: refID}
	}
	return agenda.Rehydrate(e, ref), nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
