package agenda

import "strings"

// Kind classifies an audit event. The set is closed.
type Kind string

const (
	KindFarm      Kind = "farm"
	KindWarehouse Kind = "warehouse"
	KindSale      Kind = "sale"
	KindAuction   Kind = "auction"
	KindPurchase  Kind = "purchase"
	KindEntry     Kind = "entry"
	KindExit      Kind = "exit"
)

// AllKinds returns every valid kind in display order
func AllKinds() []Kind {
	return []Kind{KindFarm, KindWarehouse, KindSale, KindAuction, KindPurchase, KindEntry, KindExit}
}

// IsValid reports whether k belongs to the closed kind set
func (k Kind) IsValid() bool {
	switch k {
	case KindFarm, KindWarehouse, KindSale, KindAuction, KindPurchase, KindEntry, KindExit:
		return true
	}
	return false
}

// ParseKind normalizes and validates a kind string
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.IsValid()
}

// Status is the lifecycle state of an audit event.
// Only pending and fulfilled are ever persisted; expired is derived at read time.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusExpired   Status = "expired"
)

// IsStored reports whether the status may be written to the store
func (s Status) IsStored() bool {
	return s == StatusPending || s == StatusFulfilled
}

// Action is the mutation that produced a derived event
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsValid reports whether a is a known mutation action
func (a Action) IsValid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// RefKind names the type of entity an event points back to
type RefKind string

const (
	RefFarm              RefKind = "farm"
	RefSale              RefKind = "sale"
	RefWarehouseMovement RefKind = "warehouse_movement"
	RefLivestockMovement RefKind = "livestock_movement"
	RefAuctionMovement   RefKind = "auction_movement"
)

// IsValid reports whether r is a known back-reference kind
func (r RefKind) IsValid() bool {
	switch r {
	case RefFarm, RefSale, RefWarehouseMovement, RefLivestockMovement, RefAuctionMovement:
		return true
	}
	return false
}
