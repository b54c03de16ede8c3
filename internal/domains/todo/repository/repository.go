package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel"
	"mytodos/internal/domains/todo/model"
	"mytodos/shared/failure"
	gRepo "mytodos/shared/repository"
	"mytodos/shared/timezone"
	"strings"
)

type Todo interface {
	FindAll(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, title string) (model.Todo, error)
	Count(ctx context.Context, filter any) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

func New(db *mongodb.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.CollectionName, db, otel),
	}
}

func (r *repositoryImpl) FindAll(ctx context.Context) ([]model.Todo, error) {
	return r.Find(ctx, nil)
}

// Create stores a new, not yet completed todo. A blank title is rejected before the store is touched.
func (r *repositoryImpl) Create(ctx context.Context, title string) (model.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return model.Todo{}, failure.MissingTitle
	}

	todo := model.Todo{
		Title:     title,
		Completed: false,
		UpdatedAt: model.NewTimestamp(timezone.NowISO()),
	}

	id, err := r.InsertOne(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	todo.ID = id

	return todo, nil
}
