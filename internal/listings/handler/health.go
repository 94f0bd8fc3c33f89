package handler

import (
	"context"
	"net/http"
	"time"

	httputil "pgstay/pkg/http"
	"pgstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
	Listings int    `json:"listings"`
}

// CatalogSize reports how many listings are being served.
type CatalogSize interface {
	Len() int
}

type HealthHandler struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
	catalog     CatalogSize
	log         *logger.Logger
}

// NewHealthHandler builds the liveness and readiness endpoints. redisClient
// may be nil, in which case the cache is reported as disabled.
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client, catalog CatalogSize, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		redisClient: redisClient,
		catalog:     catalog,
		log:         log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Listings: h.catalog.Len(),
	})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ready",
		Database: "ok",
		Cache:    "disabled",
		Listings: h.catalog.Len(),
	}

	if h.redisClient != nil {
		resp.Cache = "ok"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			// The filters cache is optional, so a failing ping degrades but does not fail readiness.
			h.log.Warn("Cache health check failed", "error", err, "path", r.URL.Path)
			resp.Cache = "error"
		}
	}

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		resp.Status = "unavailable"
		resp.Database = "error"
		httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
