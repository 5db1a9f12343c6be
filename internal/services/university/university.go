// Package university содержит бизнес-логику каталога университетов:
// одиночное и массовое создание, чтение, обновление и удаление записей.
package university

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/unifinder/uni-finder/internal/models"
)

// ErrInvalidInput возвращается при некорректных входных данных,
// например, нечитаемой дате дедлайна. Обработчики превращают её в 400.
var ErrInvalidInput = errors.New("invalid input")

// dateLayout — формат дат дедлайнов во входных JSON-документах.
const dateLayout = "2006-01-02"

// Repository определяет методы для работы с каталогом в хранилище.
type Repository interface {
	// CreateUniversity добавляет университет и возвращает его ID.
	CreateUniversity(ctx context.Context, u models.University) (int64, error)
	// CreateUniversities добавляет пачку университетов одной транзакцией.
	CreateUniversities(ctx context.Context, list []models.University) (int, error)
	// ReadUniversity возвращает университет по ID.
	ReadUniversity(ctx context.Context, id int64) (*models.University, error)
	// UpdateUniversity обновляет запись и возвращает число изменённых строк.
	UpdateUniversity(ctx context.Context, u models.University, id int64) (int, error)
	// RemoveUniversity удаляет запись и возвращает число удалённых строк.
	RemoveUniversity(ctx context.Context, id int64) (int, error)
	// ListUniversities возвращает записи по фильтру.
	ListUniversities(ctx context.Context, filter models.UniversityFilter) ([]*models.University, error)
}

// Service реализует бизнес-логику каталога университетов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service каталога.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create добавляет один университет из входного JSON-представления.
func (s *Service) Create(ctx context.Context, req models.DummyUniversity) (int64, error) {
	u, err := convert(req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateUniversity(ctx, *u)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new university", slog.Int64("id", id), slog.String("name", u.Name))
	return id, nil
}

// BulkCreate добавляет пачку университетов одной транзакцией: при любой
// ошибке конвертации или вставки не сохраняется ни одна строка.
func (s *Service) BulkCreate(ctx context.Context, reqs []models.DummyUniversity) (int, error) {
	list := make([]models.University, 0, len(reqs))
	for i, req := range reqs {
		u, err := convert(req)
		if err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		list = append(list, *u)
	}
	count, err := s.repo.CreateUniversities(ctx, list)
	if err != nil {
		return 0, err
	}
	s.log.Info("bulk created universities", slog.Int("count", count))
	return count, nil
}

// Read возвращает университет по ID.
func (s *Service) Read(ctx context.Context, id int64) (*models.University, error) {
	return s.repo.ReadUniversity(ctx, id)
}

// Update полностью заменяет атрибуты университета по ID.
// Возвращает число изменённых строк (0 — записи нет).
func (s *Service) Update(ctx context.Context, id int64, req models.DummyUniversity) (int, error) {
	u, err := convert(req)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateUniversity(ctx, *u, id)
}

// Remove удаляет университет по ID. Возвращает число удалённых строк.
func (s *Service) Remove(ctx context.Context, id int64) (int, error) {
	return s.repo.RemoveUniversity(ctx, id)
}

// List возвращает университеты по фильтру.
func (s *Service) List(ctx context.Context, filter models.UniversityFilter) ([]*models.University, error) {
	return s.repo.ListUniversities(ctx, filter)
}

func convert(req models.DummyUniversity) (*models.University, error) {
	u := &models.University{
		Name:             req.Name,
		Country:          req.Country,
		City:             req.City,
		ApplicationFee:   req.ApplicationFee,
		TuitionFee:       req.TuitionFee,
		BachelorPrograms: req.BachelorPrograms,
		MastersPrograms:  req.MastersPrograms,
		Scholarships:     req.Scholarships,
		UniversityLink:   req.UniversityLink,
		ApplicationLink:  req.ApplicationLink,
		Description:      req.Description,
	}
	if req.DeadlineUndergrad != "" {
		d, err := time.Parse(dateLayout, req.DeadlineUndergrad)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline_undergrad: %s", ErrInvalidInput, req.DeadlineUndergrad)
		}
		u.DeadlineUndergrad = &d
	}
	if req.DeadlineGrad != "" {
		d, err := time.Parse(dateLayout, req.DeadlineGrad)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline_grad: %s", ErrInvalidInput, req.DeadlineGrad)
		}
		u.DeadlineGrad = &d
	}
	return u, nil
}
