// Package ports defines the interfaces between the application layer and
// infrastructure. Implementations live under infrastructure/.
package ports

import (
	"context"
	"time"

	"memories-backend/domain/events"
	"memories-backend/domain/memory"
)

// MemoryRepository persists memory records partitioned by owner identity.
// All point operations address a record by (owner, id); a record under a
// different owner is indistinguishable from an absent one.
type MemoryRepository interface {
	// Save persists a record. An existing (owner, id) pair is overwritten.
	Save(ctx context.Context, m *memory.Memory) error
	// FindByID returns the record, or a not-found error when it is absent
	// from the owner's partition.
	FindByID(ctx context.Context, userID, memoryID string) (*memory.Memory, error)
	// FindByOwner returns every record of the owner in partition order,
	// which is unspecified. Callers re-sort.
	FindByOwner(ctx context.Context, userID string) ([]*memory.Memory, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, userID, memoryID string) error
}

// BlobStore issues time-limited upload authorizations and manages stored
// objects. Authorization expiry is enforced by the storage provider itself,
// never re-validated here.
type BlobStore interface {
	// PresignUpload returns a URL permitting one PUT of the declared
	// content type to key, valid for the given window.
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	// Delete removes the object by key.
	Delete(ctx context.Context, key string) error
	// PublicURL derives the retrieval URL for a key. Pure string
	// construction; the result is never persisted.
	PublicURL(key string) string
}

// EventPublisher emits domain events after state changes. Publishing is
// best-effort: callers log failures and never fail the request over them.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
