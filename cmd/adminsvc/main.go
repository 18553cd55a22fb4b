package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/giftcard-services/configs"

	"github.com/avvvet/giftcard-services/internal/feedsvc/broker"
	feed "github.com/avvvet/giftcard-services/internal/feedsvc/handlers"
	"github.com/avvvet/giftcard-services/internal/feedsvc/ws"
	"github.com/avvvet/giftcard-services/internal/giftsvc/bootstrap"
	"github.com/avvvet/giftcard-services/internal/giftsvc/handlers"
)

const SERVICE_NAME = "admin"

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	cfg := config.Load()

	stores, err := bootstrap.OpenStores(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error: unable to open store %v", err)
	}

	n, events := bootstrap.ConnectEvents(cfg, SERVICE_NAME+"_service_"+instanceId)
	defer n.Close()

	svc := bootstrap.NewServices(stores, events)

	// live feed of record events, only when NATS is available
	var live http.Handler
	var sub *nats.Subscription
	if n != nil {
		s := ws.NewWs()
		b := broker.NewBroker(n.Conn, s.Broadcast)

		sub, err = b.Subscribe(cfg.EventsSubject)
		if err != nil {
			log.Errorf("Error: unable to subscribe to %s %v", cfg.EventsSubject, err)
		} else {
			live = http.HandlerFunc(feed.NewHandler(s, svc.Admins).HandleLive)
		}
	}

	// Setup router
	r := handlers.NewRouter(SERVICE_NAME, handlers.AdminMethods)
	svc.Handler().SetAdminRoutes(r, cfg.AdminPrefix, live)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.AdminPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s, routes under %q", SERVICE_NAME, server.Addr, cfg.AdminPrefix)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if sub != nil {
		sub.Unsubscribe()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	stores.Close(ctx)
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
