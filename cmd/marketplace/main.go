package main

import (
	_ "time/tzdata"

	"pgstay/internal/listings/catalog"
	listingshandler "pgstay/internal/listings/handler"
	listingsrepo "pgstay/internal/listings/repository"
	listingsservice "pgstay/internal/listings/service"
	listingsvalidator "pgstay/internal/listings/validator"
	profileshandler "pgstay/internal/profiles/handler"
	profilesrepo "pgstay/internal/profiles/repository"
	profilesservice "pgstay/internal/profiles/service"
	reservationshandler "pgstay/internal/reservations/handler"
	reservationsrepo "pgstay/internal/reservations/repository"
	reservationsservice "pgstay/internal/reservations/service"
	reservationsvalidator "pgstay/internal/reservations/validator"
	"pgstay/internal/wishlist/cache"
	wishlisthandler "pgstay/internal/wishlist/handler"
	wishlistrepo "pgstay/internal/wishlist/repository"
	wishlistservice "pgstay/internal/wishlist/service"
	"pgstay/pkg/app"
	"pgstay/pkg/config"
	"pgstay/pkg/events"
	"pgstay/pkg/kafka"
	kafka_config "pgstay/pkg/kafka/config"
	kafka_middleware "pgstay/pkg/kafka/middleware"
)

const ServiceName = "marketplace"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Marketplace service")
	serverApp := app.NewApplication(cfg)

	listingCatalog := initCatalog(cfg, serverApp)
	publisher := initEvents(cfg, serverApp)

	profileRepo := profilesrepo.NewMongoProfileRepository(cfg)
	savedRepo := wishlistrepo.NewMongoSavedListingRepository(cfg)
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg, profileRepo)

	listingService := listingsservice.NewListingService(
		listingCatalog,
		listingsrepo.NewRedisFiltersCache(cfg.Client.Redis, cfg.LastFiltersTTL),
		listingsvalidator.NewListingValidator(cfg.Log),
		cfg,
	)

	registry := cache.NewRegistry(savedRepo, cfg.SessionTTL, cfg.Log)
	serverApp.AddWorker("wishlist-sessions", registry)
	wishlistService := wishlistservice.NewWishlistService(savedRepo, profileRepo, registry, listingCatalog, publisher, cfg)

	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		listingCatalog,
		reservationsvalidator.NewReservationValidator(cfg.Log),
		publisher,
		cfg,
	)

	profileService := profilesservice.NewProfileService(profileRepo, savedRepo, reservationRepo, cfg)

	serverApp.SetApp(
		listingshandler.NewHealthHandler(cfg.Client.Mongo, cfg.Client.Redis, listingCatalog, cfg.Log),
		listingshandler.NewListingHandler(listingService, cfg.Log),
		wishlisthandler.NewWishlistHandler(wishlistService, cfg.Log),
		reservationshandler.NewReservationHandler(reservationService, cfg.Log),
		profileshandler.NewProfileHandler(profileService, cfg.Log),
	)
	serverApp.Run()
}

// initCatalog serves the seed catalog until the first load from Mongo
// replaces it, then keeps it fresh on the configured schedule.
func initCatalog(cfg *config.Config, serverApp *app.Application) *catalog.Catalog {
	listingCatalog := catalog.New(catalog.Seed())

	refresher := catalog.NewRefresher(
		listingCatalog,
		listingsrepo.NewMongoListingRepository(cfg),
		cfg.ReadTimeout,
		cfg.Log,
	)
	if err := refresher.Start(cfg.CatalogRefreshSchedule); err != nil {
		cfg.Log.Fatal("Failed to start catalog refresher", "error", err)
	}
	serverApp.AddWorker("catalog-refresher", refresher)

	cfg.Log.Info("Listing catalog initialized", "listings", listingCatalog.Len())
	return listingCatalog
}

func initEvents(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published")
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.NewMetrics(app.MetricsNamespace, serverApp.Metrics().Registry()).ProducerMiddleware())
	}
	serverApp.AddCloser(producer.Close)

	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
