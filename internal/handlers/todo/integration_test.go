//go:build integration

package todo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"mytodos/config"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel/mocks"
	"mytodos/internal/domains/todo/model"
	"mytodos/internal/domains/todo/repository"
	"mytodos/internal/domains/todo/service"
	"mytodos/internal/handlers/todo"
	gRepo "mytodos/shared/repository"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

type suite struct {
	router http.Handler
	store  gRepo.Repository[model.Todo]
}

// setup connects to MONGODB_URI and gives each test a freshly created todos collection.
func setup(t *testing.T) suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := mongodb.NewConnection()
	require.NoError(t, conn.Connect(ctx,
		envOr("MONGODB_URI", "mongodb://localhost:27017"),
		envOr("MONGODB_DB", "mytodos-test"),
	))

	ot := mocks.NewOtel()
	store := gRepo.NewRepository[model.Todo](model.EntityName, model.CollectionName, conn, ot)

	require.NoError(t, store.CreateCollection(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		assert.NoError(t, store.DropCollection(ctx))
		assert.NoError(t, conn.Close(ctx))
	})

	cfg := &config.Config{}
	cfg.App.RequestTimeoutSeconds = 5

	handler := todo.New(service.New(repository.New(conn, ot), cfg, ot), ot)
	router := chi.NewRouter()
	handler.Router(router)

	return suite{router: router, store: store}
}

func TestIntegration_GetTodos(t *testing.T) {
	t.Run("responds 200 with JSON", func(t *testing.T) {
		s := setup(t)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("lists documents inserted directly", func(t *testing.T) {
		s := setup(t)

		stamp := model.NewTimestamp("2022-01-20T09:54:48.139Z")
		_, err := s.store.InsertOne(context.Background(), model.Todo{
			Title:       "TodoTest",
			CompletedAt: stamp,
			UpdatedAt:   stamp,
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		var todos []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
		require.Len(t, todos, 1)
		assert.Equal(t, "TodoTest", todos[0]["title"])
		assert.Equal(t, false, todos[0]["completed"])
	})
}

func TestIntegration_CreateTodo(t *testing.T) {
	post := func(router http.Handler, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	t.Run("stores exactly one document", func(t *testing.T) {
		s := setup(t)

		rec := post(s.router, url.Values{"title": {"Todo Post Test"}})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body.ID)

		id, err := primitive.ObjectIDFromHex(body.ID)
		require.NoError(t, err)

		count, err := s.store.Count(context.Background(), bson.M{model.FieldTitle: "Todo Post Test"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		byID, err := s.store.Count(context.Background(), bson.M{model.FieldID: id})
		require.NoError(t, err)
		assert.EqualValues(t, 1, byID)

		rec = httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		var todos []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
		require.Len(t, todos, 1)
		assert.Equal(t, "Todo Post Test", todos[0]["title"])
		assert.Equal(t, false, todos[0]["completed"])
	})

	t.Run("missing title creates nothing", func(t *testing.T) {
		s := setup(t)

		rec := post(s.router, url.Values{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"errorMsg":"Missing parameter 'title'"}`, rec.Body.String())

		count, err := s.store.Count(context.Background(), bson.D{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
