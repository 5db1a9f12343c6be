package paymentinit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/services/payment"
)

// MockService реализует интерфейс Service
type MockService struct {
	mock.Mock
}

func (m *MockService) InitializePayment(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func TestInitHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		userID         any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная инициализация платежа",
			userID: int64(7),
			setupMock: func(m *MockService) {
				m.On("InitializePayment", mock.Anything, int64(7)).
					Return("https://checkout.chapa.co/checkout/payment/abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"checkout_url":"https://checkout.chapa.co/checkout/payment/abc"`,
		},
		{
			name:           "отсутствует авторизация",
			userID:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
		{
			name:   "шлюз не настроен",
			userID: int64(7),
			setupMock: func(m *MockService) {
				m.On("InitializePayment", mock.Anything, int64(7)).
					Return("", payment.ErrMissingSecret)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "payment gateway is not configured",
		},
		{
			name:   "шлюз отклонил транзакцию",
			userID: int64(7),
			setupMock: func(m *MockService) {
				m.On("InitializePayment", mock.Anything, int64(7)).
					Return("", payment.ErrGatewayRejected)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments/initialize", nil)
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
