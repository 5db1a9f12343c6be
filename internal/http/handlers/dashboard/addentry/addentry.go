// Package addentry реализует HTTP-обработчик для добавления университета
// в один из пяти списков личного кабинета.
package addentry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/services/dashboard"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление записей в списки кабинета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики списков кабинета.
type Service interface {
	AddToList(ctx context.Context, userID int64, req models.DummyListEntry) (*models.Dashboard, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить университет в список
// @Description Добавляет существующий университет в один из пяти списков кабинета. Повторное добавление не меняет кабинет.
// @Tags Dashboard
// @Accept  json
// @Produce  json
// @Param request body models.DummyListEntry true "Университет и имя списка"
// @Success 200 {object} map[string]any "Обновленный кабинет"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или имя списка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Университет не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/lists [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.addentry"

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

	var req models.DummyListEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded",
		slog.Int64("university_id", req.UniversityID),
		slog.String("list_name", req.ListName))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.AddToList(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Info("university not found", slog.Int64("university_id", req.UniversityID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("university not found"))
		case errors.Is(err, dashboard.ErrInvalidListName):
			log.Error("invalid list name", slog.String("list_name", req.ListName))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid list name"))
		default:
			log.Error("failed to add university to list", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add university to list"))
		}
		return
	}

	log.Info("university added to list",
		slog.Int64("user_id", userID),
		slog.Int64("university_id", req.UniversityID),
		slog.String("list_name", req.ListName))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dashboard": res,
	}))
}
