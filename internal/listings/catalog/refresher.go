package catalog

import (
	"context"
	"time"

	"pgstay/pkg/logger"
	"pgstay/pkg/model"

	"github.com/robfig/cron/v3"
)

type Loader interface {
	FindAll(ctx context.Context) ([]*model.Listing, error)
}

// Refresher reloads the catalog from the listing store on a cron schedule.
// A failed or empty load keeps the current snapshot.
type Refresher struct {
	catalog *Catalog
	loader  Loader
	cron    *cron.Cron
	timeout time.Duration
	log     *logger.Logger
}

func NewRefresher(catalog *Catalog, loader Loader, timeout time.Duration, log *logger.Logger) *Refresher {
	return &Refresher{
		catalog: catalog,
		loader:  loader,
		cron:    cron.New(),
		timeout: timeout,
		log:     log,
	}
}

// Start loads once and then schedules a reload on every tick of schedule.
func (r *Refresher) Start(schedule string) error {
	r.Refresh(context.Background())

	if _, err := r.cron.AddFunc(schedule, func() { r.Refresh(context.Background()) }); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("Catalog refresher started", "schedule", schedule)
	return nil
}

func (r *Refresher) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	listings, err := r.loader.FindAll(ctx)
	if err != nil {
		r.log.Warn("Catalog refresh failed, keeping current listings", "error", err, "listings", r.catalog.Len())
		return
	}
	if len(listings) == 0 {
		r.log.Warn("Listing store is empty, keeping current listings", "listings", r.catalog.Len())
		return
	}

	r.catalog.Replace(listings)
	r.log.Debug("Catalog refreshed", "listings", r.catalog.Len())
}

func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
