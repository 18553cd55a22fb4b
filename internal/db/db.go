package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase   = "giftcards"
	RecordsCollection = "giftcards"
	AdminCollection   = "admin"

	connectTimeout = 30 * time.Second
	pingTimeout    = 2 * time.Second
)

var ErrNoURI = errors.New("MONGODB_URI is not set")

// Gateway hands out a mongo database handle that is connected on first
// use and reused afterwards. A handle that no longer answers a ping is
// dropped and a fresh connection is made.
type Gateway struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database

	dial func(ctx context.Context, uri, dbName string) (*mongo.Client, error)
	ping func(ctx context.Context, client *mongo.Client) error
}

func NewGateway(mongoURI string) (*Gateway, error) {
	if mongoURI == "" {
		return nil, ErrNoURI
	}

	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("parse MongoDB URI: %w", err)
	}

	dbName := strings.TrimPrefix(uri.Path, "/")
	if dbName == "" {
		dbName = DefaultDatabase
	}

	return &Gateway{
		uri:    mongoURI,
		dbName: dbName,
		dial:   dialMongo,
		ping:   pingMongo,
	}, nil
}

// Database returns the cached handle, re-acquiring it when needed.
// The liveness ping runs outside the lock on a context detached from
// the caller, so one cancelled request never tears down the shared client.
func (g *Gateway) Database(ctx context.Context) (*mongo.Database, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	client, db := g.client, g.db
	g.mu.Unlock()

	if db != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pingTimeout)
		err := g.ping(pctx, client)
		cancel()
		if err == nil {
			return db, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warnf("cached MongoDB connection unusable, reconnecting: %v", err)
		g.mu.Lock()
		if g.client == client {
			g.drop()
		}
		g.mu.Unlock()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// another caller may have reconnected while we were pinging
	if g.db != nil {
		return g.db, nil
	}
	if err := g.connect(ctx); err != nil {
		return nil, err
	}
	return g.db, nil
}

func (g *Gateway) connect(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := g.dial(cctx, g.uri, g.dbName)
	if err != nil {
		return err
	}

	g.client = client
	g.db = client.Database(g.dbName)
	log.Infof("MongoDB connection established (database %s)", g.dbName)
	return nil
}

func dialMongo(ctx context.Context, uri, dbName string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	if err := EnsureIndexes(ctx, client.Database(dbName)); err != nil {
		log.Warnf("unable to create MongoDB indexes: %v", err)
	}
	return client, nil
}

func pingMongo(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, nil)
}

// drop forgets the cached client and disconnects it in the background.
// Callers hold g.mu.
func (g *Gateway) drop() {
	if stale := g.client; stale != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			if err := stale.Disconnect(ctx); err != nil {
				log.Debugf("disconnect stale MongoDB client: %v", err)
			}
		}()
	}
	g.client = nil
	g.db = nil
}

// Close is for graceful shutdown.
func (g *Gateway) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Disconnect(ctx)
	g.client = nil
	g.db = nil
	return err
}

// EnsureIndexes creates the indexes the record queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(RecordsCollection)

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "check_date", Value: -1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, models)
	return err
}
