package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/avvvet/giftcard-services/internal/giftsvc/errs"
	"github.com/avvvet/giftcard-services/internal/giftsvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type ctxKey int

const adminEmailKey ctxKey = iota

var (
	errAuthRequired = errs.Auth("Authentication required")
	errDatabase     = errs.Internal("Database error")
	errDeleteFailed = errs.Internal("Delete failed")
	errCheckFailed  = errs.Internal("Check failed")
)

// leading integer of a path segment, "12abc" reads as 12
var leadingInt = regexp.MustCompile(`^\s*[+-]?[0-9]+`)

// RequireAdmin rejects requests without a valid bearer token.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := h.admins.Authenticate(jwtauth.TokenFromHeader(r))
		if err != nil {
			log.Debugf("admin route %s rejected: %v", r.URL.Path, err)
			h.fail(w, r, errAuthRequired, errAuthRequired)
			return
		}

		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminEmail returns the email of the authenticated admin, if any.
func AdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.List(r.Context())
	if err != nil {
		h.fail(w, r, err, errDatabase)
		return
	}

	log.Debugf("history: %d records", len(list))
	h.CreateResponse(w, http.StatusOK, list)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(chi.URLParam(r, "*"))
	if !ok {
		h.fail(w, r, service.ErrRecordNotFound, errDeleteFailed)
		return
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, errDeleteFailed)
		return
	}

	h.CreateResponse(w, http.StatusOK, MessageResponse{Message: "Record deleted successfully"})
}

// Check is the admin-side existence check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	h.adminCheck(w, r, errCheckFailed)
}

func parseRecordID(s string) (int64, bool) {
	m := leadingInt.FindString(s)
	if m == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
