package repositories

import (
	"context"

	domain "github.com/launchpage/api/internal/domain"
)

// DocumentStore is the capability interface over the remote document store.
// Collections are addressed by name; every implementation is bound to exactly
// one client scope for its lifetime, so all paths resolve inside that
// deployment's namespace.
type DocumentStore interface {
	// List returns every record in the collection. Order is store-determined.
	List(ctx context.Context, collection string) ([]domain.Record, error)

	// Get fetches a single record. A missing document is reported through the
	// boolean, not an error.
	Get(ctx context.Context, collection, id string) (domain.Record, bool, error)

	// Create writes a new record. When customID is empty an id is generated as
	// the collection's initial character followed by a millisecond timestamp;
	// two creates inside the same millisecond can collide. The stored record,
	// including its id field, is returned.
	Create(ctx context.Context, collection string, data domain.Record, customID string) (domain.Record, error)

	// Update merges the given fields into an existing record. Updating a
	// missing document fails with a not-found store error.
	Update(ctx context.Context, collection, id string, partial domain.Record) error

	// Remove deletes the record. Removing an absent document is not an error.
	Remove(ctx context.Context, collection, id string) error
}

// StoreError categorises persistence failures for services that need to react
// to more than the message.
type StoreError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}
