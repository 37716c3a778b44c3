package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

const (
	movieCollection = "movies"
	genreCollection = "genres"
)

type MongoMovieRepository struct {
	coll *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MongoMovieRepository {
	return &MongoMovieRepository{coll: db.Collection(movieCollection)}
}

type mongoMovie struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Year      int                `bson:"year"`
	Overview  string             `bson:"overview,omitempty"`
	PosterURL string             `bson:"poster_url,omitempty"`
	GenreIDs  []string           `bson:"genre_ids,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoMovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var mm mongoMovie
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MongoMovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer cur.Close(ctx)

	var movies []domain.Movie
	for cur.Next(ctx) {
		var mm mongoMovie
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode movie: %w", err)
		}
		movies = append(movies, *mm.toDomain())
	}
	return movies, cur.Err()
}

func (r *MongoMovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	doc := toMongoMovie(movie)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	created := *movie
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoMovieRepository) Update(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(movie.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	doc := toMongoMovie(movie)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return movie, nil
}

func (r *MongoMovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toMongoMovie(m *domain.Movie) mongoMovie {
	return mongoMovie{
		Title:     m.Title,
		Year:      m.Year,
		Overview:  m.Overview,
		PosterURL: m.PosterURL,
		GenreIDs:  m.GenreIDs,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.Unix(),
		UpdatedAt: m.UpdatedAt.Unix(),
	}
}

func (mm mongoMovie) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:        mm.ID.Hex(),
		Title:     mm.Title,
		Year:      mm.Year,
		Overview:  mm.Overview,
		PosterURL: mm.PosterURL,
		GenreIDs:  mm.GenreIDs,
		CreatedBy: mm.CreatedBy,
		CreatedAt: unixToTime(mm.CreatedAt),
		UpdatedAt: unixToTime(mm.UpdatedAt),
	}
}

// MongoGenreRepository stores the genre vocabulary.
type MongoGenreRepository struct {
	coll *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *MongoGenreRepository {
	return &MongoGenreRepository{coll: db.Collection(genreCollection)}
}

type mongoGenre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *MongoGenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer cur.Close(ctx)

	var genres []domain.Genre
	for cur.Next(ctx) {
		var mg mongoGenre
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode genre: %w", err)
		}
		genres = append(genres, domain.Genre{ID: mg.ID.Hex(), Name: mg.Name})
	}
	return genres, cur.Err()
}

func (r *MongoGenreRepository) Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	res, err := r.coll.InsertOne(ctx, mongoGenre{Name: genre.Name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert genre: %w", err)
	}

	created := *genre
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoGenreRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
