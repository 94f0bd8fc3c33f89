package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	wishlisterrors "pgstay/internal/wishlist/errors"
	"pgstay/pkg/config"
	mongodb "pgstay/pkg/db/mongo"
	"pgstay/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Saved_pgs"
)

type SavedListingRepository interface {
	FindIDsByUser(ctx context.Context, userID string) ([]string, error)
	FindByUser(ctx context.Context, userID string) ([]*model.SavedListing, error)
	Insert(ctx context.Context, entry *model.SavedListing) error
	Delete(ctx context.Context, userID, listingID string) error
	DeleteByID(ctx context.Context, userID, id string) (*model.SavedListing, error)
}

type mongoSavedListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSavedListingRepository(cfg *config.Config) SavedListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSavedListingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSavedListingRepository) FindIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"pg_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find saved listings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PGID string `bson:"pg_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode saved listings: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PGID)
	}
	return ids, nil
}

// FindByUser returns the user's saved entries, newest first.
func (r *mongoSavedListingRepository) FindByUser(ctx context.Context, userID string) ([]*model.SavedListing, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find saved listings: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]*model.SavedListing, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode saved listings: %w", err)
	}

	return entries, nil
}

// Insert stores entry. The (user_id, pg_id) index is unique, so saving a
// listing that is already saved is treated as done.
func (r *mongoSavedListingRepository) Insert(ctx context.Context, entry *model.SavedListing) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.cfg.Log.Debug("Listing already saved",
				"user_id", entry.UserID,
				"listing_id", entry.PGID,
			)
			return nil
		}
		return fmt.Errorf("failed to insert saved listing: %w", err)
	}
	return nil
}

func (r *mongoSavedListingRepository) Delete(ctx context.Context, userID, listingID string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "pg_id": listingID}); err != nil {
		return fmt.Errorf("failed to delete saved listing: %w", err)
	}
	return nil
}

// DeleteByID removes one of userID's entries by row id and returns it.
func (r *mongoSavedListingRepository) DeleteByID(ctx context.Context, userID, id string) (*model.SavedListing, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	var entry model.SavedListing
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wishlisterrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete saved listing: %w", err)
	}

	return &entry, nil
}
