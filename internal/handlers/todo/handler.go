package todo

import (
	"mytodos/infras/otel"
	"mytodos/internal/domains/todo/model/dto"
	"mytodos/internal/domains/todo/service"
	"mytodos/shared/constant"
	"mytodos/shared/logger"
	"mytodos/shared/validator"
	"mytodos/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Todo
	otel    otel.Otel
}

func New(service service.Todo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)
	})
}

// GetTodos lists every stored todo item.
// @Summary Get all todo items
// @Description Retrieve every todo item in store order. No filtering or pagination.
// @Tags Todo
// @Produce json
// @Success 200 {array} dto.TodoResponse "List of todo items"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Failure 504 {object} response.Error
// @Router /todos [get]
func (handler *Handler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	todos, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todos retrieved successfully")

	response.WithJSON(writer, http.StatusOK, todos)
}

// CreateTodo handles the creation of a new todo item.
// @Summary Create a new todo item
// @Description Create an open todo item from a title. Accepts form or JSON bodies.
// @Tags Todo
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param title formData string true "Todo title"
// @Success 200 {object} dto.CreateTodoResponse "Identifier of the new todo"
// @Failure 400 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 422 {object} response.Error "Missing parameter 'title'"
// @Failure 500 {object} response.Error
// @Router /todos [post]
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Bind(writer, request, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo created successfully with id " + res.ID)

	response.WithJSON(writer, http.StatusOK, res)
}
