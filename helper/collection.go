package helper

import (
	"context"
	"errors"
	"fmt"
	"mytodos/config"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel"
	"mytodos/internal/domains/todo/model"
	"mytodos/shared/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	ActionCreate = "create"
	ActionDrop   = "drop"
	ActionCount  = "count"
)

var ErrUnknownAction = errors.New("unknown collection action")

type collectionAdmin interface {
	CreateCollection(ctx context.Context) error
	DropCollection(ctx context.Context) error
	Count(ctx context.Context, filter any) (int64, error)
}

// Runner connects with cfg and applies action to the todos collection.
func Runner(ctx context.Context, cfg *config.Config, action string) error {
	if !validAction(action) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	conn, cleanup, err := mongodb.New(cfg)
	if err != nil {
		return fmt.Errorf("error connecting to mongodb: %w", err)
	}

	defer cleanup()

	ot, otelCleanup := otel.New(cfg)
	defer otelCleanup()

	todos := repository.NewRepository[model.Todo](model.EntityName, model.CollectionName, conn, ot)

	return run(ctx, &todos, action)
}

func run(ctx context.Context, admin collectionAdmin, action string) error {
	switch action {
	case ActionCreate:
		if err := admin.CreateCollection(ctx); err != nil {
			return fmt.Errorf("error creating collection: %w", err)
		}

		log.Info().Str("collection", model.CollectionName).Msg("Collection is ready")
	case ActionDrop:
		if err := admin.DropCollection(ctx); err != nil {
			return fmt.Errorf("error dropping collection: %w", err)
		}

		log.Info().Str("collection", model.CollectionName).Msg("Collection dropped")
	case ActionCount:
		count, err := admin.Count(ctx, bson.D{})
		if err != nil {
			return fmt.Errorf("error counting documents: %w", err)
		}

		log.Info().Str("collection", model.CollectionName).Int64("count", count).Msg("Documents counted")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	return nil
}

func validAction(action string) bool {
	switch action {
	case ActionCreate, ActionDrop, ActionCount:
		return true
	}

	return false
}

func Create(ctx context.Context, cfg *config.Config) error {
	return Runner(ctx, cfg, ActionCreate)
}

func Drop(ctx context.Context, cfg *config.Config) error {
	return Runner(ctx, cfg, ActionDrop)
}

func Count(ctx context.Context, cfg *config.Config) error {
	return Runner(ctx, cfg, ActionCount)
}
