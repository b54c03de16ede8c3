package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"mytodos/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestConnection_NotConnected(t *testing.T) {
	conn := NewConnection()

	_, err := conn.Database()
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = conn.Collection("todos")
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.ErrorIs(t, conn.Ping(context.Background()), ErrNotConnected)
	assert.NoError(t, conn.Close(context.Background()))
}

func TestConnection_ConnectMalformedURI(t *testing.T) {
	conn := NewConnection()

	err := conn.Connect(context.Background(), "not-a-mongo-uri", "mytodos-test")

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "mytodos-test", connErr.Database)
	assert.NotNil(t, errors.Unwrap(err))

	_, err = conn.Database()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnection_ConnectUnreachable(t *testing.T) {
	conn := NewConnection()
	conn.connectTimeout = 200 * time.Millisecond

	err := conn.Connect(context.Background(), "mongodb://127.0.0.1:1", "mytodos-test")

	var connErr *ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestNew_ReturnsConnectionError(t *testing.T) {
	cfg := &config.Config{}
	cfg.MongoDB.URI = "not-a-mongo-uri"
	cfg.MongoDB.Name = "mytodos-test"
	cfg.MongoDB.MaxRetry = 1

	conn, cleanup, err := New(cfg)

	assert.Nil(t, conn)
	assert.Nil(t, cleanup)

	var connErr *ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestNew_WaitsOnlyBetweenAttempts(t *testing.T) {
	var waits []time.Duration

	original := sleep
	sleep = func(d time.Duration) { waits = append(waits, d) }

	t.Cleanup(func() { sleep = original })

	cfg := &config.Config{}
	cfg.MongoDB.URI = "not-a-mongo-uri"
	cfg.MongoDB.Name = "mytodos-test"
	cfg.MongoDB.MaxRetry = 3
	cfg.MongoDB.RetryWaitTime = 2

	_, _, err := New(cfg)
	require.Error(t, err)

	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, waits)
}

func TestNewWithClient(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("exposes database and collection", func(mt *mtest.T) {
		conn := NewWithClient(mt.Client, "mytodos-test")

		db, err := conn.Database()
		require.NoError(mt, err)
		assert.Equal(mt, "mytodos-test", db.Name())

		coll, err := conn.Collection("todos")
		require.NoError(mt, err)
		assert.Equal(mt, "todos", coll.Name())
	})

	mt.Run("ping uses the live client", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		conn := NewWithClient(mt.Client, "mytodos-test")

		assert.NoError(mt, conn.Ping(context.Background()))
	})
}
