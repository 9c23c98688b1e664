package models

import (
	"encoding/json"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEventModel is the persistence model for agenda events.
// RefKind and RefID are written on insert and never updated.
type AuditEventModel struct {
	BaseModel
	OccursAt         time.Time      `gorm:"not null;index"`
	Kind             agenda.Kind    `gorm:"type:varchar(20);not null;index"`
	Subkind          string         `gorm:"type:varchar(100)"`
	Title            string         `gorm:"type:varchar(200)"`
	Description      string         `gorm:"type:text;not null"`
	Location         string         `gorm:"type:varchar(300)"`
	Status           agenda.Status  `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueAt            *time.Time     `gorm:"index"`
	FulfilledBy      string         `gorm:"type:varchar(100)"`
	FulfillmentNotes string         `gorm:"type:text"`
	FulfilledAt      *time.Time     `gorm:"index"`
	RefKind          *string        `gorm:"type:varchar(30);index:idx_audit_events_ref,priority:1"`
	RefID            *uuid.UUID     `gorm:"type:uuid;index:idx_audit_events_ref,priority:2"`
	Action           agenda.Action  `gorm:"type:varchar(10)"`
	Snapshot         datatypes.JSON `gorm:"column:snapshot"`
	CreatedBy        string         `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AuditEventModel) TableName() string {
	return "audit_events"
}

// ToDomain converts the persistence model to a domain AuditEvent.
func (m *AuditEventModel) ToDomain() *agenda.AuditEvent {
	e := agenda.AuditEvent{
		BaseEntity:       m.BaseModel.ToDomain(),
		OccursAt:         m.OccursAt.UTC(),
		Kind:             m.Kind,
		Subkind:          m.Subkind,
		Title:            m.Title,
		Description:      m.Description,
		Location:         m.Location,
		Status:           m.Status,
		DueAt:            utcPtr(m.DueAt),
		FulfilledBy:      m.FulfilledBy,
		FulfillmentNotes: m.FulfillmentNotes,
		FulfilledAt:      utcPtr(m.FulfilledAt),
		Action:           m.Action,
		CreatedBy:        m.CreatedBy,
	}
	if len(m.Snapshot) > 0 {
		e.Snapshot = json.RawMessage(append([]byte(nil), m.Snapshot...))
	}

	var ref *agenda.BackReference
	if m.RefKind != nil && m.RefID != nil {
		ref = &agenda.BackReference{Kind: agenda.RefKind(*m.RefKind), ID: *m.RefID}
	}
	return agenda.Rehydrate(e, ref)
}

// FromDomain populates the persistence model from a domain AuditEvent.
func (m *AuditEventModel) FromDomain(e *agenda.AuditEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.OccursAt = e.OccursAt.UTC()
	m.Kind = e.Kind
	m.Subkind = e.Subkind
	m.Title = e.Title
	m.Description = e.Description
	m.Location = e.Location
	m.Status = e.Status
	if m.Status == "" {
		m.Status = agenda.StatusPending
	}
	m.DueAt = utcPtr(e.DueAt)
	m.FulfilledBy = e.FulfilledBy
	m.FulfillmentNotes = e.FulfillmentNotes
	m.FulfilledAt = utcPtr(e.FulfilledAt)
	m.Action = e.Action
	m.CreatedBy = e.CreatedBy
	m.Snapshot = nil
	if len(e.Snapshot) > 0 {
		m.Snapshot = datatypes.JSON(append([]byte(nil), e.Snapshot...))
	}
	m.RefKind, m.RefID = nil, nil
	if ref := e.BackReference(); ref != nil {
		kind := string(ref.Kind)
		id := ref.ID
		m.RefKind = &kind
		m.RefID = &id
	}
}

// AuditEventModelFromDomain creates a new persistence model from a domain AuditEvent.
func AuditEventModelFromDomain(e *agenda.AuditEvent) *AuditEventModel {
	m := &AuditEventModel{}
	m.FromDomain(e)
	return m
}

// MutableAuditEventColumns are the columns an update may change
var MutableAuditEventColumns = []string{
	"occurs_at", "subkind", "title", "description", "location", "status",
	"due_at", "fulfilled_by", "fulfillment_notes", "fulfilled_at", "updated_at",
}

// AllModels returns every model managed by the schema, in dependency order
func AllModels() []any {
	return []any{
		&FarmModel{},
		&LivestockMovementModel{},
		&WarehouseMovementModel{},
		&SaleModel{},
		&AuctionMovementModel{},
		&AuditEventModel{},
	}
}
