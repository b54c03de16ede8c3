package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"mytodos/config"
	"mytodos/infras/mongodb"
	"mytodos/infras/otel/mocks"
	todoMocks "mytodos/internal/domains/todo/mocks"
	"mytodos/internal/domains/todo/model"
	"mytodos/internal/domains/todo/model/dto"
	"mytodos/internal/domains/todo/service"
	"mytodos/shared/failure"
)

func newService(t *testing.T) (service.Todo, *todoMocks.MockTodo) {
	ctrl := gomock.NewController(t)
	mockRepo := todoMocks.NewMockTodo(ctrl)

	cfg := &config.Config{}
	cfg.App.RequestTimeoutSeconds = 1

	return service.New(mockRepo, cfg, mocks.NewOtel()), mockRepo
}

func TestTodoService_Create(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name      string
		req       dto.CreateTodoRequest
		setupMock func(repo *todoMocks.MockTodo)
		wantID    string
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateTodoRequest{Title: "Todo Post Test"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Create(gomock.Any(), "Todo Post Test").
					Return(model.Todo{ID: id, Title: "Todo Post Test"}, nil)
			},
			wantID: id.Hex(),
		},
		{
			name: "validation failure passes through",
			req:  dto.CreateTodoRequest{Title: ""},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Create(gomock.Any(), "").
					Return(model.Todo{}, failure.MissingTitle)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "not connected",
			req:  dto.CreateTodoRequest{Title: "x"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Create(gomock.Any(), "x").
					Return(model.Todo{}, fmt.Errorf("failed to create todo: %w", mongodb.ErrNotConnected))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "timeout",
			req:  dto.CreateTodoRequest{Title: "x"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Create(gomock.Any(), "x").
					Return(model.Todo{}, fmt.Errorf("failed to insert todo: %w", context.DeadlineExceeded))
			},
			wantCode: http.StatusGatewayTimeout,
		},
		{
			name: "repository error",
			req:  dto.CreateTodoRequest{Title: "x"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Create(gomock.Any(), "x").
					Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
		})
	}
}

func TestTodoService_GetAll(t *testing.T) {
	stamp := model.NewTimestamp("2022-01-20T09:54:48.139Z")

	tests := []struct {
		name      string
		setupMock func(repo *todoMocks.MockTodo)
		wantLen   int
		wantCode  int
	}{
		{
			name: "maps every todo",
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					FindAll(gomock.Any()).
					Return([]model.Todo{
						{ID: primitive.NewObjectID(), Title: "TodoTest", UpdatedAt: stamp},
						{ID: primitive.NewObjectID(), Title: "Second", Completed: true},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "empty collection",
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().FindAll(gomock.Any()).Return([]model.Todo{}, nil)
			},
			wantLen: 0,
		},
		{
			name: "store error",
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("get all error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			res, err := svc.GetAll(context.Background())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, res)
			assert.Len(t, res, tt.wantLen)
		})
	}
}

func TestTodoService_AppliesRequestTimeout(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		FindAll(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]model.Todo, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)

			<-ctx.Done()

			return nil, ctx.Err()
		})

	_, err := svc.GetAll(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, failure.GetCode(err))
}
