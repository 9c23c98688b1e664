package agenda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"go.uber.org/zap"
)

// Mutation identifies the change that triggered an emission and who made it
type Mutation struct {
	Action agenda.Action
	Actor  shared.Actor
}

// Create, Update and Delete build mutations for the given actor
func Create(actor shared.Actor) Mutation { return Mutation{Action: agenda.ActionCreate, Actor: actor} }
func Update(actor shared.Actor) Mutation { return Mutation{Action: agenda.ActionUpdate, Actor: actor} }
func Delete(actor shared.Actor) Mutation { return Mutation{Action: agenda.ActionDelete, Actor: actor} }

// EmissionReport tells what an emission stored and what it could not.
// Callers must not fail their mutation because of it.
type EmissionReport struct {
	Emitted  []*agenda.AuditEvent
	Failures []error
}

// OK reports whether every planned event was stored
func (r EmissionReport) OK() bool {
	return len(r.Failures) == 0
}

// EventEmitter derives agenda events from domain mutations.
// There is one method per mutated entity; each is called after the
// mutation has been committed.
type EventEmitter interface {
	FarmChanged(ctx context.Context, m Mutation, f *farm.Farm) EmissionReport
	LivestockMovementChanged(ctx context.Context, m Mutation, mv *farm.LivestockMovement, farmName string) EmissionReport
	WarehouseMovementChanged(ctx context.Context, m Mutation, mv *warehouse.Movement) EmissionReport
	SaleChanged(ctx context.Context, m Mutation, s *trade.Sale, farmName string) EmissionReport
	AuctionMovementChanged(ctx context.Context, m Mutation, mv *trade.AuctionMovement) EmissionReport
}

// consequence is one event planned for a mutation
type consequence struct {
	name    string
	kind    agenda.Kind
	primary bool
	build   func() (agenda.NewEventParams, error)
}

// Emitter is the EventEmitter backed by an EventStore.
// All events of one mutation are written with a single atomic CreateAll.
type Emitter struct {
	store    agenda.EventStore
	recorder EmissionRecorder
	clock    shared.Clock
	logger   *zap.Logger
}

// EmitterOption configures an Emitter
type EmitterOption func(*Emitter)

// WithRecorder sets the recorder that receives emission metrics
func WithRecorder(r EmissionRecorder) EmitterOption {
	return func(e *Emitter) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock overrides the clock used to date delete events
func WithClock(c shared.Clock) EmitterOption {
	return func(e *Emitter) {
		if c != nil {
			e.clock = c
		}
	}
}

// NewEmitter creates an Emitter writing to store
func NewEmitter(store agenda.EventStore, logger *zap.Logger, opts ...EmitterOption) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Emitter{
		store:    store,
		recorder: nopRecorder{},
		clock:    shared.SystemClock{},
		logger:   logger.Named("agenda.emitter"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FarmChanged emits one farm event
func (e *Emitter) FarmChanged(ctx context.Context, m Mutation, f *farm.Farm) EmissionReport {
	ref := &agenda.BackReference{Kind: agenda.RefFarm, ID: f.ID}
	return e.emit(ctx, m, "farm", []consequence{{
		name:    "farm",
		kind:    agenda.KindFarm,
		primary: true,
		build: func() (agenda.NewEventParams, error) {
			snap, err := snapshotFarm(f)
			if err != nil {
				return agenda.NewEventParams{}, err
			}
			p := agenda.NewEventParams{
				Kind:          agenda.KindFarm,
				Location:      f.Location,
				BackReference: ref,
				Snapshot:      snap,
			}
			name := titleCase(f.Name)
			switch m.Action {
			case agenda.ActionCreate:
				p.OccursAt = f.CreatedAt
				p.Title = "Finca creada"
				p.Description = fmt.Sprintf("Se registró la finca %s en %s", name, f.Location)
			case agenda.ActionUpdate:
				p.OccursAt = f.UpdatedAt
				p.Title = "Finca actualizada"
				p.Description = fmt.Sprintf("Se actualizaron los datos de la finca %s", name)
			default:
				p.OccursAt = e.clock.Now()
				p.Title = "Finca eliminada"
				p.Description = fmt.Sprintf("Se eliminó la finca %s", name)
			}
			return p, nil
		},
	}})
}

// LivestockMovementChanged emits one entry or exit event
func (e *Emitter) LivestockMovementChanged(ctx context.Context, m Mutation, mv *farm.LivestockMovement, farmName string) EmissionReport {
	kind := agenda.KindEntry
	title := "Entrada de animales"
	if mv.Type == farm.MovementExit {
		kind = agenda.KindExit
		title = "Salida de animales"
	}
	ref := &agenda.BackReference{Kind: agenda.RefLivestockMovement, ID: mv.ID}
	return e.emit(ctx, m, "livestock_movement", []consequence{{
		name:    "livestock_movement",
		kind:    kind,
		primary: true,
		build: func() (agenda.NewEventParams, error) {
			snap, err := snapshotLivestock(mv, farmName)
			if err != nil {
				return agenda.NewEventParams{}, err
			}
			desc := fmt.Sprintf("%d %s", mv.Quantity, mv.Category)
			if mv.Reason != "" {
				desc += " por " + mv.Reason
			}
			if farmName != "" {
				desc += " en " + titleCase(farmName)
			}
			return agenda.NewEventParams{
				OccursAt:      e.occursAt(m, mv.OccurredAt),
				Kind:          kind,
				Subkind:       mv.Reason,
				Title:         actionTitle(title, m.Action),
				Description:   desc,
				Location:      farmName,
				BackReference: ref,
				Snapshot:      snap,
			}, nil
		},
	}})
}

// WarehouseMovementChanged emits one warehouse event
func (e *Emitter) WarehouseMovementChanged(ctx context.Context, m Mutation, mv *warehouse.Movement) EmissionReport {
	ref := &agenda.BackReference{Kind: agenda.RefWarehouseMovement, ID: mv.ID}
	return e.emit(ctx, m, "warehouse_movement", []consequence{{
		name:    "warehouse_movement",
		kind:    agenda.KindWarehouse,
		primary: true,
		build: func() (agenda.NewEventParams, error) {
			snap, err := snapshotWarehouse(mv)
			if err != nil {
				return agenda.NewEventParams{}, err
			}
			return agenda.NewEventParams{
				OccursAt:      e.occursAt(m, mv.OccurredAt),
				Kind:          agenda.KindWarehouse,
				Subkind:       mv.Direction.Label(),
				Title:         actionTitle(titleCase(mv.Direction.Label())+" de bodega", m.Action),
				Description:   describeSupply(mv.Quantity.String(), mv.Unit, mv.Product),
				BackReference: ref,
				Snapshot:      snap,
			}, nil
		},
	}})
}

// SaleChanged emits the sale event. On create it also emits the herd exit
// and one warehouse event per supply line, all dated on the sale date.
func (e *Emitter) SaleChanged(ctx context.Context, m Mutation, s *trade.Sale, farmName string) EmissionReport {
	ref := &agenda.BackReference{Kind: agenda.RefSale, ID: s.ID}
	snap := func() (json.RawMessage, error) { return snapshotSale(s, farmName) }

	consequences := []consequence{{
		name:    "sale",
		kind:    agenda.KindSale,
		primary: true,
		build: func() (agenda.NewEventParams, error) {
			data, err := snap()
			if err != nil {
				return agenda.NewEventParams{}, err
			}
			return agenda.NewEventParams{
				OccursAt: e.occursAt(m, s.SoldAt),
				Kind:     agenda.KindSale,
				Title:    actionTitle("Venta", m.Action),
				Description: fmt.Sprintf("Venta de %d %s a %s por %s",
					s.AnimalCount, s.AnimalCategory, titleCase(s.Buyer), formatPesos(s.TotalAmount().StringFixed(0))),
				Location:      farmName,
				BackReference: ref,
				Snapshot:      data,
			}, nil
		},
	}}

	if m.Action == agenda.ActionCreate {
		consequences = append(consequences, consequence{
			name: "sale_exit",
			kind: agenda.KindExit,
			build: func() (agenda.NewEventParams, error) {
				if s.AnimalCount <= 0 {
					return agenda.NewEventParams{}, shared.NewValidationError("sale has no animals to exit")
				}
				return agenda.NewEventParams{
					OccursAt:      s.SoldAt,
					Kind:          agenda.KindExit,
					Subkind:       "venta",
					Title:         "Salida por venta",
					Description:   fmt.Sprintf("Salida de %d %s vendidos a %s", s.AnimalCount, s.AnimalCategory, titleCase(s.Buyer)),
					Location:      farmName,
					BackReference: ref,
				}, nil
			},
		})
		for i, line := range s.SupplyLines {
			consequences = append(consequences, consequence{
				name: fmt.Sprintf("sale_supply_line_%d", i+1),
				kind: agenda.KindWarehouse,
				build: func() (agenda.NewEventParams, error) {
					if err := line.Validate(); err != nil {
						return agenda.NewEventParams{}, err
					}
					return agenda.NewEventParams{
						OccursAt:      s.SoldAt,
						Kind:          agenda.KindWarehouse,
						Subkind:       warehouse.DirectionOut.Label(),
						Title:         "Salida de bodega por venta",
						Description:   describeSupply(line.Quantity.String(), line.Unit, line.Product),
						Location:      farmName,
						BackReference: ref,
					}, nil
				},
			})
		}
	}

	return e.emit(ctx, m, "sale", consequences)
}

// AuctionMovementChanged emits one purchase or auction event
func (e *Emitter) AuctionMovementChanged(ctx context.Context, m Mutation, mv *trade.AuctionMovement) EmissionReport {
	kind := agenda.KindPurchase
	title := "Compra en subasta"
	subkind := "compra"
	if mv.Type == trade.AuctionSale {
		kind = agenda.KindAuction
		title = "Venta en subasta"
		subkind = "venta"
	}
	ref := &agenda.BackReference{Kind: agenda.RefAuctionMovement, ID: mv.ID}
	return e.emit(ctx, m, "auction_movement", []consequence{{
		name:    "auction_movement",
		kind:    kind,
		primary: true,
		build: func() (agenda.NewEventParams, error) {
			snap, err := snapshotAuction(mv)
			if err != nil {
				return agenda.NewEventParams{}, err
			}
			return agenda.NewEventParams{
				OccursAt: e.occursAt(m, mv.OccurredAt),
				Kind:     kind,
				Subkind:  subkind,
				Title:    actionTitle(title, m.Action),
				Description: fmt.Sprintf("%d %s en %s, neto %s",
					mv.AnimalCount, mv.AnimalCategory, titleCase(mv.AuctionName), formatPesos(mv.Net().StringFixed(0))),
				Location:      mv.Location,
				BackReference: ref,
				Snapshot:      snap,
			}, nil
		},
	}})
}

// occursAt dates create and update events on the entity's own date and
// delete events on the moment of deletion.
func (e *Emitter) occursAt(m Mutation, entityDate time.Time) time.Time {
	if m.Action == agenda.ActionDelete {
		return e.clock.Now()
	}
	return entityDate
}

func (e *Emitter) emit(ctx context.Context, m Mutation, entity string, consequences []consequence) EmissionReport {
	log := e.logger.With(
		zap.String("entity", entity),
		zap.String("action", string(m.Action)),
		zap.String("actor", m.Actor.ID),
	)

	var report EmissionReport
	events := make([]*agenda.AuditEvent, 0, len(consequences))
	planned := make([]consequence, 0, len(consequences))

	for _, c := range consequences {
		params, err := c.build()
		var event *agenda.AuditEvent
		if err == nil {
			params.Action = m.Action
			params.CreatedBy = m.Actor.ID
			event, err = agenda.NewAuditEvent(params)
		}
		if err != nil {
			failure := &EmissionError{Consequence: c.name, Kind: c.kind, Stage: StageBuild, Primary: c.primary, Err: err}
			report.Failures = append(report.Failures, failure)
			e.recorder.EmissionFailed(c.kind, StageBuild)
			if c.primary {
				log.Error("Primary agenda event could not be built",
					zap.String("consequence", c.name),
					zap.String("kind", string(c.kind)),
					zap.Any("params", params),
					zap.Error(err))
			} else {
				log.Warn("Partial emission failure",
					zap.String("consequence", c.name),
					zap.String("kind", string(c.kind)),
					zap.Error(err))
			}
			continue
		}
		events = append(events, event)
		planned = append(planned, c)
	}

	if len(events) == 0 {
		return report
	}

	if err := e.store.CreateAll(ctx, events); err != nil {
		titles := make([]string, len(events))
		for i, ev := range events {
			titles[i] = ev.Title
			c := planned[i]
			report.Failures = append(report.Failures, &EmissionError{
				Consequence: c.name,
				Kind:        c.kind,
				Stage:       StagePersist,
				Primary:     c.primary,
				Err:         shared.WrapDependency("event store", err),
			})
			e.recorder.EmissionFailed(c.kind, StagePersist)
		}
		log.Error("Agenda events could not be stored",
			zap.Strings("titles", titles),
			zap.Int("count", len(events)),
			zap.Error(err))
		return report
	}

	for _, ev := range events {
		e.recorder.EventsEmitted(ev.Kind, 1)
	}
	report.Emitted = events
	log.Debug("Agenda events emitted", zap.Int("count", len(events)))
	return report
}

var _ EventEmitter = (*Emitter)(nil)
