package handler

import (
	"net/http"
	"strconv"

	"pgstay/internal/listings/service"
	"pgstay/pkg/auth"
	apperrors "pgstay/pkg/errors"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ListingHandler struct {
	service service.ListingService
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.Search(r.Context(), auth.FromContext(r.Context()), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	details, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, details)
}

func (h *ListingHandler) Quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	result, err := h.service.Quote(r.Context(), ps.ByName("id"), service.QuoteRequest{
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
		RoomID:   query.Get("room_id"),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *ListingHandler) SuggestLocations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			httputil.WriteError(w, apperrors.InvalidInput("invalid limit parameter: "+limitStr))
			return
		}
	}

	suggestions := h.service.SuggestLocations(r.Context(), query.Get("q"), limit)
	httputil.WriteList(w, suggestions, len(suggestions))
}

func (h *ListingHandler) LastFilters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := h.service.LastFilters(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"criteria": criteria,
		"query":    criteria.Query().Encode(),
	})
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/listings", h.Search)
	router.GET("/api/v1/listings/id/:id", h.GetByID)
	router.GET("/api/v1/listings/id/:id/quote", h.Quote)
	router.GET("/api/v1/listings/locations/suggest", h.SuggestLocations)
	router.GET("/api/v1/listings/filters/last", h.LastFilters)
}
