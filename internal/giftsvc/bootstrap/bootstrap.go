// Package bootstrap wires storage, events and services from Settings.
// Both executables share it.
package bootstrap

import (
	"context"
	"fmt"

	config "github.com/avvvet/giftcard-services/configs"
	"github.com/avvvet/giftcard-services/internal/db"
	"github.com/avvvet/giftcard-services/internal/giftsvc/broker"
	"github.com/avvvet/giftcard-services/internal/giftsvc/card"
	giftdb "github.com/avvvet/giftcard-services/internal/giftsvc/db"
	"github.com/avvvet/giftcard-services/internal/giftsvc/handlers"
	"github.com/avvvet/giftcard-services/internal/giftsvc/service"
	"github.com/avvvet/giftcard-services/internal/giftsvc/store"
	"github.com/avvvet/giftcard-services/internal/giftsvc/token"
	"github.com/avvvet/giftcard-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Stores struct {
	Records store.RecordStore
	Admins  store.AdminStore
	close   func(ctx context.Context)
}

// Close releases the underlying connection, if any.
func (s *Stores) Close(ctx context.Context) {
	if s.close != nil {
		s.close(ctx)
	}
}

// OpenStores selects the store implementation named by cfg.StoreDriver.
// Mongo connects lazily on first use, Postgres connects immediately.
func OpenStores(ctx context.Context, cfg config.Settings) (*Stores, error) {
	switch cfg.StoreDriver {
	case DriverMongo, "":
		g, err := db.NewGateway(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Records: store.NewMongoRecordStore(g),
			Admins:  store.NewMongoAdminStore(g),
			close: func(ctx context.Context) {
				if err := g.Close(ctx); err != nil {
					log.Warnf("closing MongoDB connection: %v", err)
				}
			},
		}, nil

	case DriverPostgres:
		pool, err := giftdb.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect to Postgres: %w", err)
		}
		log.Info("Postgres connection established")
		return &Stores{
			Records: store.NewPgRecordStore(pool),
			Admins:  store.NewPgAdminStore(pool),
			close:   func(context.Context) { giftdb.ClosePool() },
		}, nil

	case DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		mem := store.NewMemoryStore()
		return &Stores{Records: mem, Admins: mem}, nil
	}

	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// ConnectEvents returns the record event broker. Without NATS_URL, or
// when NATS is unreachable, events are dropped and n is nil.
func ConnectEvents(cfg config.Settings, name string) (n *nats.Nats, b *broker.Broker) {
	if cfg.NatsURL == "" {
		log.Info("NATS_URL not set, record events disabled")
		return nil, broker.NewBroker(nil, cfg.EventsSubject, config.GetInstanceId())
	}

	n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, name)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v, record events disabled", err)
		return nil, broker.NewBroker(nil, cfg.EventsSubject, config.GetInstanceId())
	}

	log.Printf("NATS connection established successfully %s", n.Url)
	return n, broker.NewBroker(n.Conn, cfg.EventsSubject, config.GetInstanceId())
}

// Services bundles what the HTTP handlers need.
type Services struct {
	Balances *service.BalanceService
	Admins   *service.AdminService
	Records  *service.RecordService
}

func NewServices(stores *Stores, events service.RecordEvents) *Services {
	return &Services{
		Balances: service.NewBalanceService(card.NewSimulator(), stores.Records, events),
		Admins:   service.NewAdminService(stores.Admins, token.NewService()),
		Records:  service.NewRecordService(stores.Records, events),
	}
}

func (s *Services) Handler() *handlers.Handler {
	return handlers.NewHandler(s.Balances, s.Admins, s.Records)
}
