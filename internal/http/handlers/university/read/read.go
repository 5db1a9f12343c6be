// Package read реализует HTTP-обработчик для получения университета по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения
// записи каталога и возвращает данные университета в JSON-формате.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// Handler обрабатывает запросы на получение университета по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения записи каталога.
type Service interface {
	Read(ctx context.Context, id int64) (*models.University, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить университет
// @Description Возвращает запись каталога по ID. Требуется действующая подписка.
// @Tags Universities
// @Produce  json
// @Param id path int true "ID университета"
// @Success 200 {object} map[string]any "Данные университета"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Университет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /universities/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.university.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("university not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("university not found"))
			return
		}
		log.Error("failed to read university", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read university"))
		return
	}

	log.Info("university read", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"university": res,
	}))
}
