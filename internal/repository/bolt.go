package repository

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BoltRepository keeps one entity kind as JSON documents in one bucket.
// Generated ids are the zero-padded hex bucket sequence, so key order is
// insertion order.
type BoltRepository[T any, PT entityPtr[T]] struct {
	db     *bolt.DB
	bucket []byte
}

func NewBoltRepository[T any, PT entityPtr[T]](db *bolt.DB) *BoltRepository[T, PT] {
	return &BoltRepository[T, PT]{db: db, bucket: []byte(tableName[T, PT]())}
}

func (r *BoltRepository[T, PT]) put(b *bolt.Bucket, item *T) error {
	if PT(item).GetID() == "" {
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		PT(item).SetID(fmt.Sprintf("%016x", seq))
	} else if b.Get([]byte(PT(item).GetID())) != nil {
		return ErrConflict
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return b.Put([]byte(PT(item).GetID()), data)
}

func (r *BoltRepository[T, PT]) Create(ctx context.Context, item *T) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(r.bucket)
		if err != nil {
			return err
		}
		return r.put(b, item)
	})
	if errors.Is(err, ErrConflict) {
		return ErrConflict
	}
	return errors.Wrapf(err, "create %s", r.bucket)
}

func (r *BoltRepository[T, PT]) CreateMany(ctx context.Context, items []*T) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(r.bucket)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := r.put(b, item); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "create many %s", r.bucket)
}

func (r *BoltRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			rows = append(rows, item)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", r.bucket)
	}
	return rows, nil
}

func (r *BoltRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var item *T
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil || id == "" {
			return nil
		}
		v := b.Get([]byte(id))
		if v == nil {
			return nil
		}
		item = new(T)
		return json.Unmarshal(v, item)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s %s", r.bucket, id)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *BoltRepository[T, PT]) Update(ctx context.Context, item *T) error {
	id := []byte(PT(item).GetID())
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil || len(id) == 0 || b.Get(id) == nil {
			return ErrNotFound
		}
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put(id, data)
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "update %s %s", r.bucket, id)
}

func (r *BoltRepository[T, PT]) DeleteByID(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil || id == "" || b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "delete %s %s", r.bucket, id)
}

// BoltStore an embedded single-file document store
type BoltStore struct {
	db       *bolt.DB
	menus    *BoltRepository[domain.MenuItem, *domain.MenuItem]
	contacts *BoltRepository[domain.ContactMessage, *domain.ContactMessage]
	orders   *BoltRepository[domain.Order, *domain.Order]
}

var _ Store = (*BoltStore)(nil)

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt file %s", path)
	}
	return &BoltStore{
		db:       db,
		menus:    NewBoltRepository[domain.MenuItem](db),
		contacts: NewBoltRepository[domain.ContactMessage](db),
		orders:   NewBoltRepository[domain.Order](db),
	}, nil
}

func (s *BoltStore) Menus() Repository[domain.MenuItem]          { return s.menus }
func (s *BoltStore) Contacts() Repository[domain.ContactMessage] { return s.contacts }
func (s *BoltStore) Orders() Repository[domain.Order]            { return s.orders }

func (s *BoltStore) Name() string { return "bolt" }

func (s *BoltStore) Migrate(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, t := range domain.Tables {
			if _, err := tx.CreateBucketIfNotExists([]byte(t.(domain.Entity).TableName())); err != nil {
				return errors.Wrap(err, "create bucket")
			}
		}
		return nil
	})
}

func (s *BoltStore) Drop(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, t := range domain.Tables {
			err := tx.DeleteBucket([]byte(t.(domain.Entity).TableName()))
			if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return errors.Wrap(err, "delete bucket")
			}
		}
		return nil
	})
}

func (s *BoltStore) Ping(context.Context) error {
	return s.db.View(func(*bolt.Tx) error { return nil })
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
