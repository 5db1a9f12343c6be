package addentry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/services/dashboard"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// MockService реализует интерфейс Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddToList(ctx context.Context, userID int64, req models.DummyListEntry) (*models.Dashboard, error) {
	args := m.Called(ctx, userID, req)
	res, _ := args.Get(0).(*models.Dashboard)
	return res, args.Error(1)
}

func TestAddEntryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validReq := models.DummyListEntry{
		UniversityID: 42,
		ListName:     "favorites",
	}

	tests := []struct {
		name           string
		userID         any
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное добавление в список",
			userID:      int64(7),
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("AddToList", mock.Anything, int64(7), validReq).
					Return(&models.Dashboard{UserID: 7}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"dashboard"`,
		},
		{
			name:           "отсутствует авторизация",
			userID:         nil,
			requestBody:    validReq,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
		{
			name:           "некорректный JSON",
			userID:         int64(7),
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "ошибка валидации",
			userID:         int64(7),
			requestBody:    models.DummyListEntry{UniversityID: 0, ListName: ""},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "университет не найден",
			userID:      int64(7),
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("AddToList", mock.Anything, int64(7), validReq).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "university not found",
		},
		{
			name:        "неизвестное имя списка",
			userID:      int64(7),
			requestBody: models.DummyListEntry{UniversityID: 42, ListName: "wishlist"},
			setupMock: func(m *MockService) {
				m.On("AddToList", mock.Anything, int64(7),
					models.DummyListEntry{UniversityID: 42, ListName: "wishlist"}).
					Return(nil, dashboard.ErrInvalidListName)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid list name",
		},
		{
			name:        "ошибка сервиса",
			userID:      int64(7),
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("AddToList", mock.Anything, int64(7), validReq).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not add university to list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/dashboard/lists", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}

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
