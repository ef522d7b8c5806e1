package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
)

type unavailableRepository[T any] struct {
	cause error
}

func (r unavailableRepository[T]) err() error {
	return errors.Wrap(ErrUnavailable, r.cause.Error())
}

func (r unavailableRepository[T]) Create(context.Context, *T) error       { return r.err() }
func (r unavailableRepository[T]) CreateMany(context.Context, []*T) error { return r.err() }
func (r unavailableRepository[T]) List(context.Context) ([]T, error)      { return nil, r.err() }
func (r unavailableRepository[T]) GetByID(context.Context, string) (*T, error) {
	return nil, r.err()
}
func (r unavailableRepository[T]) Update(context.Context, *T) error         { return r.err() }
func (r unavailableRepository[T]) DeleteByID(context.Context, string) error { return r.err() }

// UnavailableStore stands in when the configured store could not be opened.
// The process keeps serving; every operation fails with ErrUnavailable.
type UnavailableStore struct {
	kind  string
	cause error
}

var _ Store = (*UnavailableStore)(nil)

func NewUnavailableStore(kind string, cause error) *UnavailableStore {
	return &UnavailableStore{kind: kind, cause: cause}
}

func (s *UnavailableStore) Menus() Repository[domain.MenuItem] {
	return unavailableRepository[domain.MenuItem]{cause: s.cause}
}

func (s *UnavailableStore) Contacts() Repository[domain.ContactMessage] {
	return unavailableRepository[domain.ContactMessage]{cause: s.cause}
}

func (s *UnavailableStore) Orders() Repository[domain.Order] {
	return unavailableRepository[domain.Order]{cause: s.cause}
}

func (s *UnavailableStore) Name() string { return s.kind }

func (s *UnavailableStore) Migrate(context.Context) error { return errors.Wrap(ErrUnavailable, s.cause.Error()) }
func (s *UnavailableStore) Drop(context.Context) error    { return errors.Wrap(ErrUnavailable, s.cause.Error()) }
func (s *UnavailableStore) Ping(context.Context) error    { return errors.Wrap(ErrUnavailable, s.cause.Error()) }
func (s *UnavailableStore) Close() error                  { return nil }
