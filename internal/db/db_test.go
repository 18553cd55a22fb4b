package db

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lazyClient returns a client that never dials until an operation runs.
func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100 * time.Millisecond)
	c, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { c.Disconnect(context.Background()) })
	return c
}

// newSeededGateway returns a gateway already holding a cached client.
func newSeededGateway(t *testing.T) (*Gateway, *mongo.Client, *int32) {
	t.Helper()
	g, err := NewGateway("mongodb://127.0.0.1:1/giftcards_unit")
	require.NoError(t, err)

	cached := lazyClient(t)
	g.client = cached
	g.db = cached.Database(g.dbName)

	var dials int32
	g.dial = func(ctx context.Context, uri, dbName string) (*mongo.Client, error) {
		atomic.AddInt32(&dials, 1)
		return lazyClient(t), nil
	}
	return g, cached, &dials
}

func TestNewGatewayDatabaseName(t *testing.T) {
	g, err := NewGateway("mongodb://localhost:27017/cards?retryWrites=true")
	require.NoError(t, err)
	assert.Equal(t, "cards", g.dbName)

	g, err = NewGateway("mongodb://localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, g.dbName)

	_, err = NewGateway("")
	assert.ErrorIs(t, err, ErrNoURI)
}

func TestDatabaseReusesHealthyHandle(t *testing.T) {
	g, cached, dials := newSeededGateway(t)
	g.ping = func(ctx context.Context, c *mongo.Client) error { return nil }

	db, err := g.Database(context.Background())
	require.NoError(t, err)
	assert.Same(t, g.db, db)
	assert.Same(t, cached, g.client)
	assert.Zero(t, atomic.LoadInt32(dials))
}

func TestDatabaseCancelledCallerKeepsClient(t *testing.T) {
	g, cached, dials := newSeededGateway(t)
	var pings int32
	g.ping = func(ctx context.Context, c *mongo.Client) error {
		atomic.AddInt32(&pings, 1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Database(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, cached, g.client)
	assert.NotNil(t, g.db)
	assert.Zero(t, atomic.LoadInt32(&pings))
	assert.Zero(t, atomic.LoadInt32(dials))
}

func TestDatabaseCancelledDuringPingKeepsClient(t *testing.T) {
	g, cached, dials := newSeededGateway(t)

	ctx, cancel := context.WithCancel(context.Background())
	g.ping = func(pctx context.Context, c *mongo.Client) error {
		cancel()
		// the ping context does not follow the caller
		assert.NoError(t, pctx.Err())
		return errors.New("server selection error: context canceled")
	}

	_, err := g.Database(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, cached, g.client)
	assert.Zero(t, atomic.LoadInt32(dials))
}

func TestDatabaseReconnectsAfterFailedPing(t *testing.T) {
	g, cached, dials := newSeededGateway(t)
	g.ping = func(ctx context.Context, c *mongo.Client) error {
		if c == cached {
			return errors.New("connection reset")
		}
		return nil
	}

	db, err := g.Database(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, cached, g.client)
	assert.Same(t, g.db, db)
	assert.EqualValues(t, 1, atomic.LoadInt32(dials))
}

func TestDatabaseConcurrentReconnectDialsOnce(t *testing.T) {
	g, cached, dials := newSeededGateway(t)
	g.ping = func(ctx context.Context, c *mongo.Client) error {
		if c == cached {
			return errors.New("connection reset")
		}
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Database(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(dials))
}

func TestDatabaseDialFailure(t *testing.T) {
	g, err := NewGateway("mongodb://127.0.0.1:1/giftcards_unit")
	require.NoError(t, err)
	g.dial = func(ctx context.Context, uri, dbName string) (*mongo.Client, error) {
		return nil, errors.New("connect to MongoDB: refused")
	}

	_, err = g.Database(context.Background())
	assert.EqualError(t, err, "connect to MongoDB: refused")
	assert.Nil(t, g.client)
	assert.NoError(t, g.Close(context.Background()))
}
