// Package paymentwebhook реализует HTTP-обработчик вебхука платежного
// шлюза Chapa.
//
// Handler проверяет HMAC-подпись тела запроса, извлекает ссылку транзакции
// и передает ее бизнес-логике сверки: статус транзакции перепроверяется
// запросом к шлюзу, и только после подтверждения подписка продлевается.
package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/services/payment"
)

// Service описывает интерфейс бизнес-логики сверки транзакции.
type Service interface {
	ConfirmTransaction(ctx context.Context, txRef string) error
}

// Handler управляет HTTP-запросами вебхука Chapa.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый Handler с переданными логгером, сервисом и секретом вебхука.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// computeSignature считает hex-кодированный HMAC-SHA256 от канонической
// формы JSON-тела. Chapa подписывает компактную сериализацию payload,
// поэтому тело сначала разбирается и сериализуется заново: json.Marshal
// упорядочивает ключи и убирает пробелы.
func (h *Handler) computeSignature(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ServeHTTP godoc
// @Summary Вебхук Chapa
// @Description Принимает уведомление шлюза о платеже, проверяет HMAC-подпись, сверяет статус транзакции со шлюзом и продлевает подписку плательщика на месяц.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Success 200 {object} response.Response "Транзакция подтверждена, подписка продлена"
// @Failure 400 {object} response.ErrorResponse "Нет tx_ref, шлюз отклонил транзакцию или ссылка не распознана"
// @Failure 401 {object} response.ErrorResponse "Подпись отсутствует или не совпадает"
// @Failure 500 {object} response.ErrorResponse "Секрет не настроен или шлюз недоступен"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.webhookSecret == "" {
		log.Error("webhook secret is not configured")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("webhook is not configured"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read request body"))
		return
	}
	defer r.Body.Close()

	// Chapa присылает подпись в одном из двух заголовков.
	signature := r.Header.Get("Chapa-Signature")
	if signature == "" {
		signature = r.Header.Get("X-Chapa-Signature")
	}
	if signature == "" {
		log.Error("webhook signature header missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("signature header missing"))
		return
	}

	expected, err := h.computeSignature(body)
	if err != nil {
		log.Error("failed to compute webhook signature", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid webhook payload"))
		return
	}
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		log.Error("webhook signature mismatch")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var payload struct {
		TxRef string `json:"tx_ref"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.TxRef == "" {
		log.Error("tx_ref missing in webhook payload")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("tx_ref is required"))
		return
	}

	if err := h.service.ConfirmTransaction(r.Context(), payload.TxRef); err != nil {
		switch {
		case errors.Is(err, payment.ErrGatewayRejected), errors.Is(err, payment.ErrBadReference):
			log.Error("transaction rejected", slog.String("tx_ref", payload.TxRef), sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to confirm transaction", slog.String("tx_ref", payload.TxRef), sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not confirm transaction"))
		}
		return
	}

	log.Info("webhook processed successfully", slog.String("tx_ref", payload.TxRef))
	render.JSON(w, r, response.OK())
}
