package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
)

type draftKey struct {
	owner string
	form  draft.Form
}

type draftEntry struct {
	draft     draft.Draft
	expiresAt time.Time // zero means no expiry
}

// InMemoryDraftRepository implements draft.Repository in process memory.
// Expired drafts are dropped lazily on Load.
type InMemoryDraftRepository struct {
	mu      sync.RWMutex
	entries map[draftKey]draftEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryDraftRepository creates an empty repository; a zero ttl never expires
func NewInMemoryDraftRepository(ttl time.Duration) *InMemoryDraftRepository {
	return &InMemoryDraftRepository{
		entries: make(map[draftKey]draftEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save implements draft.Repository
func (r *InMemoryDraftRepository) Save(_ context.Context, d *draft.Draft) error {
	stored := *d
	stored.Payload = append([]byte(nil), d.Payload...)

	e := draftEntry{draft: stored}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[draftKey{owner: d.Owner, form: d.Form}] = e
	return nil
}

// Load implements draft.Repository
func (r *InMemoryDraftRepository) Load(_ context.Context, owner string, form draft.Form) (*draft.Draft, error) {
	key := draftKey{owner: owner, form: form}

	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if ok && !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		ok = false
	}
	if !ok {
		return nil, shared.NewNotFoundError("draft")
	}

	d := e.draft
	d.Payload = append([]byte(nil), e.draft.Payload...)
	return &d, nil
}

// Clear implements draft.Repository
func (r *InMemoryDraftRepository) Clear(_ context.Context, owner string, form draft.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, draftKey{owner: owner, form: form})
	return nil
}

var _ draft.Repository = (*InMemoryDraftRepository)(nil)
