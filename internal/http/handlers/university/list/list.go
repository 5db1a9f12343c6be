// Package list реализует HTTP-обработчик для поиска университетов по каталогу.
//
// Handler читает фильтры из query-параметров (страна, город, максимальная
// стоимость обучения) вместе с limit и offset и возвращает подходящие записи.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
)

// Handler управляет HTTP-запросами на поиск по каталогу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска по каталогу.
type Service interface {
	List(ctx context.Context, filter models.UniversityFilter) ([]*models.University, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти университеты
// @Description Возвращает университеты каталога с фильтрами по стране, городу и стоимости обучения. Требуется действующая подписка.
// @Tags Universities
// @Produce  json
// @Param country query string false "Фильтр по стране"
// @Param city query string false "Фильтр по городу"
// @Param max_tuition_fee query number false "Максимальная стоимость обучения"
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Param offset query int false "Смещение страницы"
// @Success 200 {object} map[string]any "Список университетов"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /universities [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.university.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := models.UniversityFilter{
		Country: r.URL.Query().Get("country"),
		City:    r.URL.Query().Get("city"),
		Limit:   limit,
		Offset:  offset,
	}

	if raw := r.URL.Query().Get("max_tuition_fee"); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil || fee < 0 {
			log.Error("invalid max_tuition_fee", slog.String("value", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("max_tuition_fee must be a non-negative number"))
			return
		}
		filter.MaxTuitionFee = &fee
	}

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list universities", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list universities"))
		return
	}

	log.Info("universities listed", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":        len(res),
		"universities": res,
	}))
}
