package types

import (
	"context"
	"errors"
)

// Store defines backend-agnostic access to test case records.
// Callers attach to a backend, run operations, and detach when done.
// Every operation acquires its own connection and releases it before
// returning.
type Store interface {
	// Attach binds the Store to the backend described by config. It does
	// not create or open the database file. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// Path returns the location of the database file.
	Path() string

	// Initialize creates the schema if it does not exist and returns the
	// storage location. Safe to call repeatedly; never destroys data.
	Initialize(ctx context.Context) (string, error)

	// Initialized reports whether the schema is present. A missing database
	// file is reported as false with a nil error; an error means the storage
	// exists but could not be inspected.
	Initialized(ctx context.Context) (bool, error)

	// Create inserts a new test case and returns its system-assigned ID.
	Create(ctx context.Context, tc NewTestCase) (int64, error)

	// List returns summaries matching the filter in ascending ID order.
	// No match yields an empty slice and a nil error.
	List(ctx context.Context, filter Filter) ([]Summary, error)

	// Get returns the full record. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*TestCase, error)

	// Update applies the supplied fields only. Returns ErrNothingToUpdate
	// when no field is supplied and ErrNotFound when id does not exist.
	Update(ctx context.Context, id int64, u Update) error

	// Delete removes the record permanently. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotInitialized  = errors.New("store is not initialized")
)

// Operation errors.
var (
	ErrNotFound        = errors.New("test case not found")
	ErrNothingToUpdate = errors.New("no fields provided for update")
	ErrInvalidID       = errors.New("invalid test case ID")
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)
