package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

const favoriteCollection = "favorites"

// MongoFavoriteRepository stores user favorites; the compound unique index
// on (user_id, movie_id) prevents duplicate favorites atomically.
type MongoFavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{coll: db.Collection(favoriteCollection)}
}

type mongoFavorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	MovieID   string             `bson:"movie_id"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoFavoriteRepository) FindByID(ctx context.Context, id string) (*domain.Favorite, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var mf mongoFavorite
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *MongoFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var favorites []domain.Favorite
	for cur.Next(ctx) {
		var mf mongoFavorite
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		favorites = append(favorites, *mf.toDomain())
	}
	return favorites, cur.Err()
}

func (r *MongoFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	doc := mongoFavorite{
		UserID:    favorite.UserID,
		MovieID:   favorite.MovieID,
		CreatedAt: favorite.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	created := *favorite
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoFavoriteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (mf mongoFavorite) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:        mf.ID.Hex(),
		UserID:    mf.UserID,
		MovieID:   mf.MovieID,
		CreatedAt: unixToTime(mf.CreatedAt),
	}
}
