package handler

import (
	"net/http"

	"pgstay/internal/reservations/service"
	"pgstay/internal/reservations/validator"
	"pgstay/pkg/auth"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.service.Submit(r.Context(), auth.FromContext(r.Context()), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteAction(w, http.StatusCreated, outcome, outcome.Notification, outcome.Redirect)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.History(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteList(w, reservations, len(reservations))
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.List)
}
