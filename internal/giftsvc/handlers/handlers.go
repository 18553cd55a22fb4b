package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/avvvet/giftcard-services/internal/giftsvc/errs"
	"github.com/avvvet/giftcard-services/internal/giftsvc/service"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidBody   = errs.Validation("Invalid request body")
	errRouteNotFound = errs.NotFound("Route not found")
	errInternal      = errs.Internal("Internal server error")
)

type Handler struct {
	balances *service.BalanceService
	admins   *service.AdminService
	records  *service.RecordService
}

func NewHandler(balances *service.BalanceService, admins *service.AdminService, records *service.RecordService) *Handler {
	return &Handler{
		balances: balances,
		admins:   admins,
		records:  records,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// fail writes err as a JSON error body. Errors without a caller-facing
// message are logged and reported as fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback *errs.HTTPError) {
	he := errs.From(err, fallback)
	if he.StatusCode >= http.StatusInternalServerError {
		log.WithField("request_id", middleware.GetReqID(r.Context())).
			Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	h.CreateResponse(w, he.StatusCode, ErrorResponse{Error: he.Message})
}

func (h *Handler) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, errRouteNotFound.StatusCode, ErrorResponse{Error: errRouteNotFound.Message})
}

// decodeBody reads a JSON object into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return errInvalidBody
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errInvalidBody
	}
	return nil
}
