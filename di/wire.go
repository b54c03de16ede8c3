//go:build wireinject
// +build wireinject

package di

import (
	"mytodos/config"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel"
	"mytodos/infras/redis"
	healthHandler "mytodos/internal/handlers/health"
	todoHandler "mytodos/internal/handlers/todo"
	"mytodos/shared/cache"
	"mytodos/transport/http"
	"mytodos/transport/http/middleware"
	"mytodos/transport/http/router"

	todoRepository "mytodos/internal/domains/todo/repository"
	todoService "mytodos/internal/domains/todo/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	mongodb.New,
	otel.New,
	redis.New,
	wire.Bind(new(healthHandler.Pinger), new(*mongodb.Connection)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	todoHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}
