package mongodb

import (
	"context"
	"errors"
	"fmt"
	"mytodos/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	disconnectTimeout     = 5 * time.Second
)

var sleep = time.Sleep

// ErrNotConnected is returned when the handle is requested before Connect or after Close.
var ErrNotConnected = errors.New("database not connected")

// ConnectionError reports a malformed URI or an unreachable server.
type ConnectionError struct {
	Database string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to database %q: %v", e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connection owns the single client shared by every repository.
type Connection struct {
	mu             sync.RWMutex
	client         *mongo.Client
	database       *mongo.Database
	connectTimeout time.Duration
}

// NewConnection returns a connector that has not dialled anything yet.
func NewConnection() *Connection {
	return &Connection{connectTimeout: defaultConnectTimeout}
}

// NewWithClient wraps an already connected client.
func NewWithClient(client *mongo.Client, databaseName string) *Connection {
	conn := NewConnection()
	conn.attach(client, databaseName)

	return conn
}

// attach must be called with mu held or before the connection is shared.
func (c *Connection) attach(client *mongo.Client, databaseName string) {
	c.client = client
	c.database = client.Database(databaseName)
}

// New connects using the configured URI and database, retrying MaxRetry times.
// The returned cleanup disconnects the client.
func New(cfg *config.Config) (*Connection, func(), error) {
	conn := NewConnection()
	if cfg.MongoDB.ConnectTimeoutSeconds > 0 {
		conn.connectTimeout = time.Duration(cfg.MongoDB.ConnectTimeoutSeconds) * time.Second
	}

	maxRetry := max(cfg.MongoDB.MaxRetry, 1)

	var err error

	for retry := range maxRetry {
		err = conn.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Name)
		if err == nil {
			break
		}

		log.
			Error().
			Err(err).
			Str("dbName", cfg.MongoDB.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database")

		if retry < maxRetry-1 {
			sleep(time.Duration(cfg.MongoDB.RetryWaitTime) * time.Second)
		}
	}

	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()

		if err := conn.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return conn, cleanup, nil
}

// Connect dials uri and selects databaseName. Calling it while connected does nothing.
func (c *Connection) Connect(ctx context.Context, uri, databaseName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(c.connectTimeout).
		SetServerSelectionTimeout(c.connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return &ConnectionError{Database: databaseName, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return &ConnectionError{Database: databaseName, Err: err}
	}

	c.attach(client, databaseName)

	log.Info().Str("dbName", databaseName).Msg("Connected to database")

	return nil
}

// Database returns the active database handle.
func (c *Connection) Database() (*mongo.Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.database == nil {
		return nil, ErrNotConnected
	}

	return c.database, nil
}

func (c *Connection) Collection(name string) (*mongo.Collection, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	return db.Collection(name), nil
}

func (c *Connection) Ping(ctx context.Context) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()

	if client == nil {
		return ErrNotConnected
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close disconnects the client. It is safe to call more than once.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect(ctx)
	c.client = nil
	c.database = nil

	if err != nil {
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}

	log.Info().Msg("Database connection closed")

	return nil
}
