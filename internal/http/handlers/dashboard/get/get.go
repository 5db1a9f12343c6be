// Package get реализует HTTP-обработчик для получения личного кабинета.
//
// Handler извлекает ID пользователя из контекста запроса, вызывает
// бизнес-логику получения кабинета (с созданием при первом обращении)
// и возвращает кабинет с пятью списками университетов.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
)

// Handler управляет HTTP-запросами на получение кабинета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики кабинета.
type Service interface {
	Get(ctx context.Context, userID int64) (*models.Dashboard, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить кабинет
// @Description Возвращает личный кабинет текущего пользователя с пятью списками университетов. Кабинет создается при первом обращении.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Кабинет пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.get"

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

	res, err := h.service.Get(r.Context(), userID)
	if err != nil {
		log.Error("failed to get dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get dashboard"))
		return
	}

	log.Info("dashboard fetched", slog.Int64("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dashboard": res,
	}))
}
