package shared

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	GetCreatedBy() string
}

// BaseAggregateRoot provides common fields for aggregate roots.
// Version is bumped on every update but is not used for locking:
// concurrent writers overwrite each other (last write wins).
type BaseAggregateRoot struct {
	BaseEntity
	Version   int
	CreatedBy string
}

// NewBaseAggregateRoot creates a new aggregate root owned by the given actor
func NewBaseAggregateRoot(createdBy string) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
		CreatedBy:  createdBy,
	}
}

// GetVersion returns the aggregate version
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// GetCreatedBy returns the actor that created the aggregate
func (a *BaseAggregateRoot) GetCreatedBy() string {
	return a.CreatedBy
}
