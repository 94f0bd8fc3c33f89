package http

import (
	"net/http"

	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/notify"

	"github.com/goccy/go-json"
)

type ErrorResponse struct {
	Error        string               `json:"error"`
	Code         string               `json:"code,omitempty"`
	Details      map[string]any       `json:"details,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Redirect     string               `json:"redirect,omitempty"`
}

type SuccessResponse struct {
	Data         any                  `json:"data,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Redirect     string               `json:"redirect,omitempty"`
}

type ListResponse struct {
	Data       any `json:"data"`
	TotalCount int `json:"total_count"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) {
	var statusCode int
	var errResp ErrorResponse

	if apperrors.IsAppError(err) {
		e := apperrors.AsAppError(err)
		statusCode = e.StatusCode()
		message := e.Message
		if e.Code == apperrors.CodeInternal {
			message = "Internal server error"
		}
		errResp = ErrorResponse{
			Error:        message,
			Code:         e.Code,
			Details:      e.Details,
			Notification: e.Notification,
			Redirect:     e.Redirect,
		}
	} else {
		statusCode = http.StatusInternalServerError
		errResp = ErrorResponse{
			Error: "Internal server error",
			Code:  apperrors.CodeInternal,
		}
	}

	WriteJSON(w, statusCode, errResp)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// WriteAction writes the result of a user action together with the message
// and navigation the UI should apply.
func WriteAction(w http.ResponseWriter, statusCode int, data any, n *notify.Notification, redirect string) {
	WriteJSON(w, statusCode, SuccessResponse{
		Data:         data,
		Notification: n,
		Redirect:     redirect,
	})
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteList(w http.ResponseWriter, data any, totalCount int) {
	WriteJSON(w, http.StatusOK, ListResponse{
		Data:       data,
		TotalCount: totalCount,
	})
}
