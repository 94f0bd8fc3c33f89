package main

import (
	"context"
	"fmt"
	"time"

	"pgstay/internal/listings/catalog"
	listingsrepo "pgstay/internal/listings/repository"
	listingsvalidator "pgstay/internal/listings/validator"
	mongoMigration "pgstay/internal/migrations/mongo"
	"pgstay/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.GracefulShutdown()

	if err := migrateMongo(ctx, cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	if err := seedListings(ctx, cfg); err != nil {
		cfg.Log.Fatal("Seeding listings failed", "error", err)
	}
	fmt.Println("Migration completed successfully.")
}

func migrateMongo(ctx context.Context, cfg *config.Config) error {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return mongoMigration.RunMigration(ctx, db, cfg.Log)
}

// seedListings loads the default catalog into an empty Listings collection.
func seedListings(ctx context.Context, cfg *config.Config) error {
	repo := listingsrepo.NewMongoListingRepository(cfg)

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		cfg.Log.Info("Listings already present, skipping seed", "count", count)
		return nil
	}

	v := listingsvalidator.NewListingValidator(cfg.Log)
	for _, listing := range catalog.Seed() {
		if err := v.Validate(listing); err != nil {
			return fmt.Errorf("seed listing %s is invalid: %w", listing.ID, err)
		}
		if err := repo.Upsert(ctx, listing); err != nil {
			return err
		}
	}

	cfg.Log.Info("Seeded listings", "count", len(catalog.Seed()))
	return nil
}
