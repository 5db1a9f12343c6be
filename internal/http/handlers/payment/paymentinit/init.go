// Package paymentinit реализует HTTP-обработчик инициализации платежа
// за продление подписки через платежный шлюз Chapa.
//
// Handler извлекает ID пользователя из контекста, вызывает бизнес-логику
// инициализации транзакции и возвращает URL страницы оплаты.
package paymentinit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/services/payment"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// Handler управляет HTTP-запросами на инициализацию платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики инициализации платежа.
type Service interface {
	InitializePayment(ctx context.Context, userID int64) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Инициализировать платеж
// @Description Создает транзакцию продления подписки в Chapa и возвращает URL страницы оплаты.
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any "URL страницы оплаты"
// @Failure 400 {object} response.ErrorResponse "Шлюз отклонил транзакцию"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Шлюз не настроен или недоступен"
// @Router /payments/initialize [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.init"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	checkoutURL, err := h.service.InitializePayment(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingSecret):
			log.Error("payment gateway is not configured")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("payment gateway is not configured"))
		case errors.Is(err, payment.ErrGatewayRejected):
			log.Error("gateway rejected transaction", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("user not found", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
		default:
			log.Error("failed to initialize payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not initialize payment"))
		}
		return
	}

	log.Info("payment initialized", slog.Int64("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"checkout_url": checkoutURL,
	}))
}
