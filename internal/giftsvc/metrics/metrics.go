package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/avvvet/giftcard-services/internal/giftsvc/card"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	balanceChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftcard_balance_checks_total",
			Help: "Balance checks recorded, by resolved card type.",
		},
		[]string{"card_type"},
	)

	recordsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "giftcard_records_deleted_total",
			Help: "Records deleted through the admin API.",
		},
	)

	adminLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftcard_admin_logins_total",
			Help: "Admin login attempts by outcome (success/invalid/error).",
		},
		[]string{"outcome"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftcard_http_requests_total",
			Help: "HTTP responses by service and status code.",
		},
		[]string{"service", "code"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			balanceChecksTotal, recordsDeletedTotal,
			adminLoginsTotal, httpRequestsTotal,
		)
	})
}

// IncBalanceCheck counts a check. Unknown types share the Other series.
func IncBalanceCheck(cardType string) {
	balanceChecksTotal.WithLabelValues(card.Known(cardType)).Inc()
}

func IncRecordDeleted() {
	recordsDeletedTotal.Inc()
}

func IncAdminLogin(outcome string) {
	adminLoginsTotal.WithLabelValues(outcome).Inc()
}

// Middleware counts every response written by next under service.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				httpRequestsTotal.WithLabelValues(service, strconv.Itoa(status)).Inc()
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
