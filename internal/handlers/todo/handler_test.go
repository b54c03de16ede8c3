package todo_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mytodos/infras/otel/mocks"
	"mytodos/internal/domains/todo/model/dto"
	serviceMocks "mytodos/internal/domains/todo/service/mocks"
	"mytodos/internal/handlers/todo"
	"mytodos/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockTodo) {
	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockTodo(ctrl)

	handler := todo.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestGetTodos(t *testing.T) {
	t.Run("returns the list as a JSON array", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any()).Return([]dto.TodoResponse{
			{ID: "61e930b8e1d3a0a3c1f1f0a1", Title: "TodoTest", Completed: false},
		}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var todos []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
		require.Len(t, todos, 1)
		assert.Equal(t, "TodoTest", todos[0]["title"])
		assert.Equal(t, false, todos[0]["completed"])
	})

	t.Run("empty collection is an empty array", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any()).Return([]dto.TodoResponse{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store failure is a 5xx with errorMsg", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any()).Return(nil, failure.ServiceUnavailable("database not connected"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"errorMsg":"database not connected"}`, rec.Body.String())
	})
}

func TestCreateTodo(t *testing.T) {
	postForm := func(values url.Values) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(values.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return r
	}

	t.Run("form title creates a todo", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), dto.CreateTodoRequest{Title: "Todo Post Test"}).
			Return(dto.CreateTodoResponse{ID: "61e930b8e1d3a0a3c1f1f0a1"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm(url.Values{"title": {"Todo Post Test"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":"61e930b8e1d3a0a3c1f1f0a1"}`, rec.Body.String())
	})

	t.Run("json title creates a todo", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), dto.CreateTodoRequest{Title: "From JSON"}).
			Return(dto.CreateTodoResponse{ID: "61e930b8e1d3a0a3c1f1f0a2"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"From JSON"}`))
		r.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	missing := map[string]*http.Request{
		"no body":     httptest.NewRequest(http.MethodPost, "/todos", nil),
		"other field": postForm(url.Values{"name": {"x"}}),
		"empty title": postForm(url.Values{"title": {""}}),
		"blank title": postForm(url.Values{"title": {"  "}}),
	}

	for name, req := range missing {
		t.Run("missing title: "+name, func(t *testing.T) {
			// The service has no expectations, so any call fails the test.
			router, _ := newRouter(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"errorMsg":"Missing parameter 'title'"}`, rec.Body.String())
		})
	}

	t.Run("service failure", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.CreateTodoResponse{}, errors.New("failed to create todo: boom"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm(url.Values{"title": {"x"}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"errorMsg":"failed to create todo: boom"}`, rec.Body.String())
	})
}
