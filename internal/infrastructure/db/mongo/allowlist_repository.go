package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

const allowlistCollection = "allowlist"

// MongoAllowlistRepository stores normalized registration emails. The unique
// index on email (EnsureIndexes) is what makes duplicate detection atomic,
// with no client-side locking.
type MongoAllowlistRepository struct {
	coll *mongo.Collection
}

func NewAllowlistRepository(db *mongo.Database) *MongoAllowlistRepository {
	return &MongoAllowlistRepository{coll: db.Collection(allowlistCollection)}
}

type mongoAllowlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoAllowlistRepository) FindByEmail(ctx context.Context, email string) (*domain.AllowlistEntry, error) {
	var me mongoAllowlistEntry
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find allowlist entry: %w", err)
	}
	return me.toDomain(), nil
}

func (r *MongoAllowlistRepository) Create(ctx context.Context, email string) (*domain.AllowlistEntry, error) {
	doc := mongoAllowlistEntry{
		Email:     email,
		CreatedAt: time.Now().UTC().Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert allowlist entry: %w", err)
	}

	entry := doc.toDomain()
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return entry, nil
}

func (r *MongoAllowlistRepository) Delete(ctx context.Context, email string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete allowlist entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoAllowlistRepository) List(ctx context.Context) ([]domain.AllowlistEntry, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list allowlist: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AllowlistEntry
	for cur.Next(ctx) {
		var me mongoAllowlistEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode allowlist entry: %w", err)
		}
		entries = append(entries, *me.toDomain())
	}
	return entries, cur.Err()
}

func (me mongoAllowlistEntry) toDomain() *domain.AllowlistEntry {
	return &domain.AllowlistEntry{
		ID:        me.ID.Hex(),
		Email:     me.Email,
		CreatedAt: unixToTime(me.CreatedAt),
	}
}
