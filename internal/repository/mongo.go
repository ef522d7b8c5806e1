package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores one entity kind in one collection, id in _id
type MongoRepository[T any, PT entityPtr[T]] struct {
	coll *mongo.Collection
}

func NewMongoRepository[T any, PT entityPtr[T]](db *mongo.Database) *MongoRepository[T, PT] {
	return &MongoRepository[T, PT]{coll: db.Collection(tableName[T, PT]())}
}

func assignObjectID[T any, PT entityPtr[T]](item *T) {
	if PT(item).GetID() == "" {
		PT(item).SetID(primitive.NewObjectID().Hex())
	}
}

func (r *MongoRepository[T, PT]) Create(ctx context.Context, item *T) error {
	assignObjectID[T, PT](item)
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return errors.Wrapf(err, "insert %s", r.coll.Name())
	}
	return nil
}

func (r *MongoRepository[T, PT]) CreateMany(ctx context.Context, items []*T) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		assignObjectID[T, PT](item)
		docs = append(docs, item)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrapf(err, "insert many %s", r.coll.Name())
	}
	return nil
}

// List sorts by _id; ObjectIDs start with their creation second
func (r *MongoRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", r.coll.Name())
	}
	rows := make([]T, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.coll.Name())
	}
	return rows, nil
}

func (r *MongoRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "find %s %s", r.coll.Name(), id)
	}
	return &item, nil
}

func (r *MongoRepository[T, PT]) Update(ctx context.Context, item *T) error {
	id := PT(item).GetID()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return errors.Wrapf(err, "replace %s %s", r.coll.Name(), id)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T, PT]) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "delete %s %s", r.coll.Name(), id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoStore keeps the process-wide client. Collections are created by
// the server on first insert, so Migrate has nothing to do.
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	menus    *MongoRepository[domain.MenuItem, *domain.MenuItem]
	contacts *MongoRepository[domain.ContactMessage, *domain.ContactMessage]
	orders   *MongoRepository[domain.Order, *domain.Order]
}

var _ Store = (*MongoStore)(nil)

// OpenMongoStore does not wait for the server; connection problems surface
// on Ping or on the first operation.
func OpenMongoStore(ctx context.Context, uri, dbname string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	return NewMongoStore(client, dbname), nil
}

func NewMongoStore(client *mongo.Client, dbname string) *MongoStore {
	db := client.Database(dbname)
	return &MongoStore{
		client:   client,
		db:       db,
		menus:    NewMongoRepository[domain.MenuItem](db),
		contacts: NewMongoRepository[domain.ContactMessage](db),
		orders:   NewMongoRepository[domain.Order](db),
	}
}

func (s *MongoStore) Menus() Repository[domain.MenuItem]          { return s.menus }
func (s *MongoStore) Contacts() Repository[domain.ContactMessage] { return s.contacts }
func (s *MongoStore) Orders() Repository[domain.Order]            { return s.orders }

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) Migrate(context.Context) error { return nil }

func (s *MongoStore) Drop(ctx context.Context) error {
	for _, t := range domain.Tables {
		name := t.(domain.Entity).TableName()
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return errors.Wrapf(err, "drop collection %s", name)
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
