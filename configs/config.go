package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

var InstanceId string

// Settings is the runtime configuration shared by the api and admin services.
type Settings struct {
	APIPort       string
	AdminPort     string
	APIPrefix     string
	AdminPrefix   string
	MongoURI      string
	PostgresURL   string
	StoreDriver   string // mongo | postgres
	NatsURL       string
	NatsToken     string
	EventsSubject string
}

const (
	DefaultAPIPrefix     = "/.netlify/functions/api"
	DefaultAdminPrefix   = "/.netlify/functions/admin"
	DefaultEventsSubject = "giftcard.records"
)

// LoadEnv reads ./.env when present. Hosted deployments inject the
// environment directly, so a missing file only warns.
func LoadEnv(service string) {
	log.Infof("%s service configuration and env variables loading started ...", service)
	if err := godotenv.Load("./.env"); err != nil {
		log.Warnf(".env file not loaded (%v), using process environment", err)
		return
	}

	log.Info(".env file loaded.")
}

// Load collects Settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		APIPort:       getEnv("API_PORT", "8081"),
		AdminPort:     getEnv("ADMIN_PORT", "8082"),
		APIPrefix:     strings.TrimSuffix(getEnv("API_PREFIX", DefaultAPIPrefix), "/"),
		AdminPrefix:   strings.TrimSuffix(getEnv("ADMIN_PREFIX", DefaultAdminPrefix), "/"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		NatsURL:       os.Getenv("NATS_URL"),
		NatsToken:     os.Getenv("NATS_TOKEN"),
		EventsSubject: getEnv("EVENTS_SUBJECT", DefaultEventsSubject),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func CreateUniqueInstance(service string) string {
	id, err := uuid.NewV4() // instance identifier
	if err != nil {
		log.Errorf("error generating instanceId: %s", err)
		os.Exit(1)
	}
	InstanceId = id.String()
	log.Infof(service+" service with Instance ID: %s is ready", id)
	return id.String()
}

func GetInstanceId() string {
	return InstanceId
}

// CORS allows every origin. OPTIONS requests pass through so the
// router can answer them with the fixed header set.
func CORS(methods []string) *cors.Cors {
	corsOptions := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     methods,
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		OptionsPassthrough: true,
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	})

	return corsOptions
}

// CORSHeaders stamps the fixed CORS headers on every response and
// answers OPTIONS with an empty 200.
func CORSHeaders(methods []string) func(next http.Handler) http.Handler {
	allow := strings.Join(methods, ", ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Methods", allow)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Logging(service string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if os.Getenv("LOG_TO_FILE") != "true" {
		return
	}

	logFolder := ".l_g"

	_, err = os.Stat(logFolder)
	if os.IsNotExist(err) {
		err = os.Mkdir(logFolder, 0755)
		if err != nil {
			log.Warnf("unable to create folder for log %s", err)
			return
		}
	}

	logFilePath := filepath.Join(logFolder, service+".log")

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal("Failed to open log file:", err)
	}

	log.SetOutput(file)

	log.Infof("log to file started for service: %s", service)
}

func CustomLoggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Printf("%s %s %s %d %s %s",
					r.Method,
					r.RequestURI,
					r.RemoteAddr,
					ww.Status(),
					http.StatusText(ww.Status()),
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// JSONRecoverer turns a panic into a generic 500 JSON body. The panic
// value and stack only go to the log.
func JSONRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.WithFields(log.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"panic":      fmt.Sprint(rvr),
				}).Errorf("Function error:\n%s", debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
