// Package remove реализует HTTP-обработчик для удаления записи каталога.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
)

// Handler управляет HTTP-запросами на удаление университетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления записи каталога.
type Service interface {
	Remove(ctx context.Context, id int64) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить университет
// @Description Удаляет запись каталога по ID вместе со ссылками на нее в кабинетах. Доступно только администраторам.
// @Tags Universities
// @Produce  json
// @Param id path int true "ID университета"
// @Success 200 {object} map[string]any "Количество удаленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Университет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /universities/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.university.remove"

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

	count, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove university", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove university"))
		return
	}
	if count == 0 {
		log.Info("university not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("university not found"))
		return
	}

	log.Info("university removed", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed_count": count,
	}))
}
