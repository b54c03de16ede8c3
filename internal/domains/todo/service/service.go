package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mytodos/config"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel"
	"mytodos/internal/domains/todo/model/dto"
	"mytodos/internal/domains/todo/repository"
	"mytodos/shared/constant"
	"mytodos/shared/failure"
	"mytodos/shared/logger"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const defaultRequestTimeout = 10 * time.Second

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.CreateTodoResponse, error)
	GetAll(ctx context.Context) ([]dto.TodoResponse, error)
}

type serviceImpl struct {
	repo    repository.Todo
	otel    otel.Otel
	timeout time.Duration
}

func New(repo repository.Todo, cfg *config.Config, otel otel.Otel) Todo {
	timeout := defaultRequestTimeout
	if cfg.App.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.App.RequestTimeoutSeconds) * time.Second
	}

	return &serviceImpl{
		repo:    repo,
		otel:    otel,
		timeout: timeout,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.CreateTodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	todo, err := s.repo.Create(ctx, req.Title)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create todo")

		return res, mapStoreError(err)
	}

	res.FromModel(todo)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get todos")

		return nil, mapStoreError(err)
	}

	scope.SetAttribute("todo.count", len(todos))

	return dto.TodosFromModels(todos), nil
}

// mapStoreError gives infrastructure failures their HTTP class. Failures raised below
// (validation) and unknown errors pass through unchanged.
func mapStoreError(err error) error {
	var fail *failure.Failure

	switch {
	case errors.As(err, &fail):
		return err
	case errors.Is(err, mongodb.ErrNotConnected):
		return failure.ServiceUnavailable(err.Error()) // nolint:wrapcheck
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return failure.GatewayTimeout(fmt.Sprintf("database did not respond in time: %v", err)) // nolint:wrapcheck
	default:
		return err
	}
}
