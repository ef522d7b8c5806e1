package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
)

var (
	// ErrNotFound no record matches the id
	ErrNotFound = errors.New("record not found")
	// ErrConflict a record with the same id already exists
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable the store could not be opened
	ErrUnavailable = errors.New("document store unavailable")
)

// Repository is the data access contract shared by every entity kind.
// Each call is a single round trip to the store; nothing spans records.
type Repository[T any] interface {
	// Create inserts item, assigning an id when item has none
	Create(ctx context.Context, item *T) error

	// CreateMany inserts items in one batch, assigning ids
	CreateMany(ctx context.Context, items []*T) error

	// List returns every record in insertion order
	List(ctx context.Context) ([]T, error)

	// GetByID returns ErrNotFound when no record matches
	GetByID(ctx context.Context, id string) (*T, error)

	// Update replaces the stored record with item, ErrNotFound when it is gone
	Update(ctx context.Context, item *T) error

	// DeleteByID returns ErrNotFound when no record matches
	DeleteByID(ctx context.Context, id string) error
}

// entityPtr constrains PT to *T implementing domain.Entity
type entityPtr[T any] interface {
	*T
	domain.Entity
}

// Store holds the live connection and hands out one repository per collection
type Store interface {
	Menus() Repository[domain.MenuItem]
	Contacts() Repository[domain.ContactMessage]
	Orders() Repository[domain.Order]

	// Migrate creates collections/tables that do not exist yet
	Migrate(ctx context.Context) error
	// Drop removes every collection/table
	Drop(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Name() string
}

func tableName[T any, PT entityPtr[T]]() string {
	var v T
	return PT(&v).TableName()
}
