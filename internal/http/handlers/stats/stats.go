// Package stats реализует HTTP-обработчик административной статистики.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
)

// Handler управляет HTTP-запросами административной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сбора статистики.
type Service interface {
	Collect(ctx context.Context) (*models.Stats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика сервиса
// @Description Возвращает счетчики пользователей, подписок и каталога. Доступно только администраторам.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Счетчики сервиса"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Collect(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect stats"))
		return
	}

	log.Info("stats collected")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stats": res,
	}))
}
