// Package bulkcreate реализует HTTP-обработчик массовой загрузки университетов
// из JSON-файла.
//
// Handler принимает multipart-форму с файлом в поле file, разбирает его как
// JSON-массив университетов, валидирует каждую запись и вызывает бизнес-логику
// массовой вставки. Вся загрузка атомарна: при любой некорректной записи в
// каталог не попадает ничего.
package bulkcreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/services/university"
)

// maxUploadSize ограничивает размер загружаемого файла.
const maxUploadSize = 10 << 20 // 10 MiB

// Handler управляет HTTP-запросами на массовую загрузку университетов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики массовой вставки.
type Service interface {
	BulkCreate(ctx context.Context, reqs []models.DummyUniversity) (int, error)
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
// @Summary Массовая загрузка университетов
// @Description Принимает JSON-файл с массивом университетов и добавляет все записи одной транзакцией. Доступно только администраторам.
// @Tags Universities
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "JSON-файл с массивом университетов"
// @Success 200 {object} map[string]any "Количество добавленных записей"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или содержит некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации одной из записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при вставке"
// @Router /universities/bulk [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.university.bulkcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("expected multipart form with file field"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("file field missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file field is required"))
		return
	}
	defer file.Close()
	log.Info("file received", slog.String("filename", header.Filename))

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read file"))
		return
	}

	var reqs []models.DummyUniversity
	if err := json.Unmarshal(data, &reqs); err != nil {
		log.Error("failed to unmarshal file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file must contain a JSON array of universities"))
		return
	}
	if len(reqs) == 0 {
		log.Error("file contains no records")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file contains no records"))
		return
	}

	for i, req := range reqs {
		if err := h.validate.Struct(req); err != nil {
			log.Error("validation failed", slog.Int("index", i), sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(
				fmt.Sprintf("record %d is invalid: %v", i, err.(validator.ValidationErrors))))
			return
		}
	}
	log.Info("all records are validated", slog.Int("count", len(reqs)))

	count, err := h.service.BulkCreate(r.Context(), reqs)
	if err != nil {
		if errors.Is(err, university.ErrInvalidInput) {
			log.Error("invalid university data", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid university data"))
			return
		}
		log.Error("failed to bulk create universities", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create universities"))
		return
	}

	log.Info("universities created", slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"created_count": count,
	}))
}
