// Package updateprofile реализует HTTP-обработчик частичного обновления
// профиля: имени, фамилии и телефона. Отсутствующие в запросе поля
// не изменяются.
package updateprofile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
)

// Handler управляет HTTP-запросами на обновление профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userID int64, req models.DummyProfileUpdate) (*models.Dashboard, error)
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
// @Summary Обновить профиль
// @Description Частично обновляет имя, фамилию и телефон текущего пользователя. Возвращает полный кабинет.
// @Tags Dashboard
// @Accept  json
// @Produce  json
// @Param request body models.DummyProfileUpdate true "Изменяемые поля профиля"
// @Success 200 {object} map[string]any "Обновленный кабинет"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/profile [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.updateprofile"

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

	var req models.DummyProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("profile updated", slog.Int64("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dashboard": res,
	}))
}
