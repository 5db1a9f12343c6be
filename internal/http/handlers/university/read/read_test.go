package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// MockService реализует интерфейс Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id int64) (*models.University, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.University)
	return res, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение университета",
			id:   "42",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(42)).
					Return(&models.University{ID: 42, Name: "Addis Ababa University"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Addis Ababa University",
		},
		{
			name:           "некорректный id в url",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name: "университет не найден",
			id:   "99",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(99)).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "university not found",
		},
		{
			name: "ошибка сервиса",
			id:   "42",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(42)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not read university",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/universities/"+tt.id, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			mockService.AssertExpectations(t)
		})
	}
}
