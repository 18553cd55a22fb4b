package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"API_PORT", "ADMIN_PORT", "API_PREFIX", "ADMIN_PREFIX", "STORE_DRIVER", "EVENTS_SUBJECT"} {
		t.Setenv(k, "")
	}

	s := Load()
	assert.Equal(t, "8081", s.APIPort)
	assert.Equal(t, "8082", s.AdminPort)
	assert.Equal(t, DefaultAPIPrefix, s.APIPrefix)
	assert.Equal(t, DefaultAdminPrefix, s.AdminPrefix)
	assert.Equal(t, "mongo", s.StoreDriver)
	assert.Equal(t, DefaultEventsSubject, s.EventsSubject)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("POSTGRES_URL", "postgres://localhost/giftcards")

	s := Load()
	assert.Equal(t, "/api", s.APIPrefix)
	assert.Equal(t, "postgres", s.StoreDriver)
	assert.Equal(t, "postgres://localhost/giftcards", s.PostgresURL)
}

func TestCORSHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := CORSHeaders([]string{"GET", "POST", "OPTIONS"})(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")
	assert.Len(t, id, 36)
	assert.Equal(t, id, GetInstanceId())
}
