package handler

import (
	"net/http"

	"pgstay/internal/wishlist/service"
	"pgstay/pkg/auth"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type WishlistHandler struct {
	service service.WishlistService
	log     *logger.Logger
}

func NewWishlistHandler(service service.WishlistService, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		log:     log,
	}
}

func (h *WishlistHandler) StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, err := h.service.StartSession(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, session)
}

func (h *WishlistHandler) EndSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.EndSession(r.Context(), auth.FromContext(r.Context())); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *WishlistHandler) IsSaved(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("listing_id")
	saved, err := h.service.IsSaved(r.Context(), auth.FromContext(r.Context()), listingID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"listing_id": listingID,
		"saved":      saved,
	})
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	outcome, err := h.service.Toggle(r.Context(), auth.FromContext(r.Context()), ps.ByName("listing_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteAction(w, http.StatusOK, outcome, outcome.Notification, "")
}

func (h *WishlistHandler) RemoveEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.RemoveEntry(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteAction(w, http.StatusOK, result, result.Notification, "")
}

func (h *WishlistHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/session", h.StartSession)
	router.DELETE("/api/v1/session", h.EndSession)
	router.GET("/api/v1/wishlist/saved/:listing_id", h.IsSaved)
	router.POST("/api/v1/wishlist/toggle/:listing_id", h.Toggle)
	router.DELETE("/api/v1/wishlist/entries/:id", h.RemoveEntry)
}
