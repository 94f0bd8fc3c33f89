package repository

import (
	"context"
	"fmt"
	"time"

	profilesrepo "pgstay/internal/profiles/repository"
	"pgstay/pkg/config"
	mongodb "pgstay/pkg/db/mongo"
	"pgstay/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Checkouts"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByUser(ctx context.Context, userID string) ([]*model.Reservation, error)
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	profiles   profilesrepo.ProfileRepository
	txManager  mongodb.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config, profiles profilesrepo.ProfileRepository) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		profiles:   profiles,
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

// Create inserts the checkout row and makes sure the guest has a profile row,
// in one transaction.
func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		insertCtx, cancel := mongodb.WithTimeout(sessCtx, r.cfg.WriteTimeout)
		defer cancel()

		if _, err := r.collection.InsertOne(insertCtx, reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return r.profiles.EnsureExists(sessCtx, reservation.UserID)
	})
}

// FindByUser returns the user's reservations, newest first.
func (r *mongoReservationRepository) FindByUser(ctx context.Context, userID string) ([]*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := make([]*model.Reservation, 0)
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}
