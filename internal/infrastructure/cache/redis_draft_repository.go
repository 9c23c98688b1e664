package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultDraftKeyPrefix namespaces draft keys; the full key is prefix+form+":"+owner
const DefaultDraftKeyPrefix = "bonito:draft:"

// RedisDraftRepository implements draft.Repository with one JSON string per
// (form, owner) key. Every save refreshes the TTL.
type RedisDraftRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisDraftRepository creates a repository on an existing client.
// A zero ttl keeps drafts until they are cleared.
func NewRedisDraftRepository(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisDraftRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultDraftKeyPrefix
	}
	return &RedisDraftRepository{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

type storedDraft struct {
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r *RedisDraftRepository) key(owner string, form draft.Form) string {
	return r.keyPrefix + string(form) + ":" + owner
}

// Save implements draft.Repository
func (r *RedisDraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	value, err := json.Marshal(storedDraft{Payload: d.Payload, UpdatedAt: d.UpdatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := r.client.Set(ctx, r.key(d.Owner, d.Form), value, r.ttl).Err(); err != nil {
		return shared.NewDependencyError("draft store", err)
	}
	return nil
}

// Load implements draft.Repository
func (r *RedisDraftRepository) Load(ctx context.Context, owner string, form draft.Form) (*draft.Draft, error) {
	value, err := r.client.Get(ctx, r.key(owner, form)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.NewNotFoundError("draft")
	}
	if err != nil {
		return nil, shared.NewDependencyError("draft store", err)
	}

	var stored storedDraft
	if err := json.Unmarshal(value, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft.Draft{
		Owner:     owner,
		Form:      form,
		Payload:   stored.Payload,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

// Clear implements draft.Repository
func (r *RedisDraftRepository) Clear(ctx context.Context, owner string, form draft.Form) error {
	if err := r.client.Del(ctx, r.key(owner, form)).Err(); err != nil {
		return shared.NewDependencyError("draft store", err)
	}
	return nil
}

var _ draft.Repository = (*RedisDraftRepository)(nil)
