package update

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

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifinder/uni-finder/internal/models"
)

// MockService реализует интерфейс Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int64, req models.DummyUniversity) (int, error) {
	args := m.Called(ctx, id, req)
	return args.Int(0), args.Error(1)
}

func validUniversity() models.DummyUniversity {
	return models.DummyUniversity{
		Name:            "Addis Ababa University",
		Country:         "Ethiopia",
		UniversityLink:  "https://www.aau.edu.et",
		ApplicationLink: "https://apply.aau.edu.et",
	}
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное обновление университета",
			id:          "42",
			requestBody: validUniversity(),
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(42), mock.AnythingOfType("models.DummyUniversity")).
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:           "некорректный id в url",
			id:             "abc",
			requestBody:    validUniversity(),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name:           "некорректный JSON",
			id:             "42",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "ошибка валидации",
			id:             "42",
			requestBody:    models.DummyUniversity{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "университет не найден",
			id:          "99",
			requestBody: validUniversity(),
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(99), mock.AnythingOfType("models.DummyUniversity")).
					Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "university not found",
		},
		{
			name:        "ошибка сервиса",
			id:          "42",
			requestBody: validUniversity(),
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(42), mock.AnythingOfType("models.DummyUniversity")).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not update university",
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

			req := httptest.NewRequest(http.MethodPut, "/universities/"+tt.id, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

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
