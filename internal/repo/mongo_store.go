package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/tbourn/nasa-image-explorer/internal/config"
	"github.com/tbourn/nasa-image-explorer/internal/domain"
)

// Index names created by EnsureIndexes.
const (
	mongoUniqueUserDate = "ux_favorites_user_date"
	mongoUserCreated    = "idx_favorites_user_created"
)

// favoriteDoc is the BSON shape of a favorite. _id is stored as a native
// ObjectID; the domain model carries its hex form.
type favoriteDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      string             `bson:"userId"`
	Title       string             `bson:"title"`
	URL         string             `bson:"url"`
	Date        string             `bson:"date"`
	Explanation string             `bson:"explanation"`
	MediaType   string             `bson:"mediaType"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d favoriteDoc) toDomain() domain.Favorite {
	return domain.Favorite{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		URL:         d.URL,
		Date:        d.Date,
		Explanation: d.Explanation,
		MediaType:   d.MediaType,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// MongoStore persists favorites in a MongoDB collection. Uniqueness of
// (userId, date) is enforced by a unique compound index (see EnsureIndexes).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore wraps an existing collection handle.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: coll.Database().Client(), coll: coll}
}

// OpenMongo connects to cfg.MongoURI with command tracing, verifies the
// connection and ensures the collection indexes exist.
func OpenMongo(ctx context.Context, cfg config.DatabaseConfig) (*MongoStore, error) {
	if cfg.MongoURI == "" {
		return nil, config.ErrMissingDatabaseURI
	}
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewMongoStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique (userId, date) index and the listing index.
// Creating an index that already exists with the same definition is a no-op.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(mongoUniqueUserDate),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName(mongoUserCreated),
		},
	})
	if err != nil {
		return fmt.Errorf("create favorites indexes: %w", err)
	}
	return nil
}

// FindOne fetches the favorite saved by userID for date.
func (s *MongoStore) FindOne(ctx context.Context, userID, date string) (*domain.Favorite, error) {
	var doc favoriteDoc
	err := s.coll.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f := doc.toDomain()
	return &f, nil
}

// Insert persists f with a new ObjectID and UTC timestamps. A duplicate key
// error from the unique index is reported as ErrDuplicate.
func (s *MongoStore) Insert(ctx context.Context, f domain.Favorite) (*domain.Favorite, error) {
	// BSON dates carry millisecond precision; truncate so the returned record
	// matches what a later read yields.
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := favoriteDoc{
		ID:          primitive.NewObjectID(),
		UserID:      f.UserID,
		Title:       f.Title,
		URL:         f.URL,
		Date:        f.Date,
		Explanation: f.Explanation,
		MediaType:   f.MediaType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

// FindAllByUser returns the user's favorites sorted by createdAt descending,
// then _id descending.
func (s *MongoStore) FindAllByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	var docs []favoriteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Favorite, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// DeleteByID removes the document with the given hex id.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Ping checks connectivity to the primary.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
