package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
	"gorm.io/gorm"
)

// GormRepository is the GORM implementation of Repository
type GormRepository[T any, PT entityPtr[T]] struct {
	db   *gorm.DB
	node *snowflake.Node
}

// NewGormRepository creates a new GORM-based repository
func NewGormRepository[T any, PT entityPtr[T]](db *gorm.DB, node *snowflake.Node) *GormRepository[T, PT] {
	return &GormRepository[T, PT]{db: db, node: node}
}

func (r *GormRepository[T, PT]) assignID(item *T) {
	if PT(item).GetID() == "" {
		PT(item).SetID(r.node.Generate().String())
	}
}

func (r *GormRepository[T, PT]) Create(ctx context.Context, item *T) error {
	r.assignID(item)
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		// not every dialect translates primary key violations
		if errors.Is(err, gorm.ErrDuplicatedKey) || r.exists(ctx, PT(item).GetID()) {
			return ErrConflict
		}
		return errors.Wrapf(err, "create %s", tableName[T, PT]())
	}
	return nil
}

func (r *GormRepository[T, PT]) exists(ctx context.Context, id string) bool {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (r *GormRepository[T, PT]) CreateMany(ctx context.Context, items []*T) error {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		r.assignID(item)
	}
	if err := r.db.WithContext(ctx).Create(items).Error; err != nil {
		return errors.Wrapf(err, "create many %s", tableName[T, PT]())
	}
	return nil
}

// List orders by id: snowflake ids grow with insertion time
func (r *GormRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list %s", tableName[T, PT]())
	}
	return rows, nil
}

func (r *GormRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "get %s %s", tableName[T, PT](), id)
	}
	return &item, nil
}

func (r *GormRepository[T, PT]) Update(ctx context.Context, item *T) error {
	id := PT(item).GetID()
	res := r.db.WithContext(ctx).Model(item).Where("id = ?", id).Select("*").Updates(item)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s %s", tableName[T, PT](), id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T, PT]) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s %s", tableName[T, PT](), id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormStore serves postgres and sqlite through one *gorm.DB
type GormStore struct {
	db       *gorm.DB
	menus    *GormRepository[domain.MenuItem, *domain.MenuItem]
	contacts *GormRepository[domain.ContactMessage, *domain.ContactMessage]
	orders   *GormRepository[domain.Order, *domain.Order]
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, node *snowflake.Node) *GormStore {
	return &GormStore{
		db:       db,
		menus:    NewGormRepository[domain.MenuItem](db, node),
		contacts: NewGormRepository[domain.ContactMessage](db, node),
		orders:   NewGormRepository[domain.Order](db, node),
	}
}

func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Menus() Repository[domain.MenuItem]          { return s.menus }
func (s *GormStore) Contacts() Repository[domain.ContactMessage] { return s.contacts }
func (s *GormStore) Orders() Repository[domain.Order]            { return s.orders }

func (s *GormStore) Name() string {
	return strings.ToLower(s.db.Dialector.Name())
}

func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

func (s *GormStore) Drop(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(domain.Tables...); err != nil {
		return errors.Wrap(err, "drop tables")
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "obtain sql.DB")
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
