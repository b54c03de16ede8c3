package repository

import (
	"context"
	"errors"
	"fmt"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel"
	"mytodos/shared/constant"
	"mytodos/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errUnexpectedID = errors.New("inserted id is not an ObjectID")
)

// Repository is a typed view over one collection of the shared connection.
type Repository[T any] struct {
	db         *mongodb.Connection
	otel       otel.Otel
	collection string
	entitas    string
}

func NewRepository[T any](entitasName, collectionName string, dbConnection *mongodb.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:         dbConnection,
		otel:       otl,
		collection: collectionName,
		entitas:    entitasName,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op))
	scope.SetAttribute(constant.OtelCollectionAttributeKey, repo.collection)

	return ctx, scope
}

func (repo *Repository[T]) coll() (*mongo.Collection, error) {
	coll, err := repo.db.Collection(repo.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s collection: %w", repo.entitas, err)
	}

	return coll, nil
}

// Find returns every document matching filter in store order. A nil filter matches all.
func (repo *Repository[T]) Find(ctx context.Context, filter any) ([]T, error) {
	ctx, scope := repo.scope(ctx, "Find")
	defer scope.End()

	if filter == nil {
		filter = bson.D{}
	}

	coll, err := repo.coll()
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find %s: %w", repo.entitas, err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode %s: %w", repo.entitas, err)
	}

	return results, nil
}

// InsertOne stores doc and returns the identifier assigned by the store.
func (repo *Repository[T]) InsertOne(ctx context.Context, doc T) (primitive.ObjectID, error) {
	ctx, scope := repo.scope(ctx, "InsertOne")
	defer scope.End()

	coll, err := repo.coll()
	if err != nil {
		scope.TraceError(err)

		return primitive.NilObjectID, err
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return primitive.NilObjectID, fmt.Errorf("failed to insert %s: %w", repo.entitas, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		scope.TraceError(errUnexpectedID)

		return primitive.NilObjectID, fmt.Errorf("failed to insert %s: %w", repo.entitas, errUnexpectedID)
	}

	return id, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter any) (int64, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	if filter == nil {
		filter = bson.D{}
	}

	coll, err := repo.coll()
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count %s: %w", repo.entitas, err)
	}

	return count, nil
}

// CreateCollection creates the backing collection. An existing collection is not an error.
func (repo *Repository[T]) CreateCollection(ctx context.Context) error {
	ctx, scope := repo.scope(ctx, "CreateCollection")
	defer scope.End()

	db, err := repo.db.Database()
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to create %s collection: %w", repo.entitas, err)
	}

	err = db.CreateCollection(ctx, repo.collection)

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
		return nil
	}

	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to create %s collection: %w", repo.entitas, err)
	}

	return nil
}

// DropCollection removes the backing collection and every document in it.
func (repo *Repository[T]) DropCollection(ctx context.Context) error {
	ctx, scope := repo.scope(ctx, "DropCollection")
	defer scope.End()

	coll, err := repo.coll()
	if err != nil {
		scope.TraceError(err)

		return err
	}

	if err := coll.Drop(ctx); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to drop %s collection: %w", repo.entitas, err)
	}

	return nil
}
