// Package dashboard содержит бизнес-логику личного кабинета: пять списков
// университетов, частичное обновление профиля и данные подписки для
// проверки доступа.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/unifinder/uni-finder/internal/models"
)

// ErrInvalidListName возвращается, если имя списка не входит в пять допустимых.
var ErrInvalidListName = errors.New("invalid list name")

// Repository определяет методы хранилища для работы с кабинетами.
type Repository interface {
	// GetOrCreateDashboard возвращает кабинет пользователя, создавая его
	// при необходимости.
	GetOrCreateDashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	// GetDashboard возвращает кабинет или ErrNotFound.
	GetDashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	// AddUniversityToList идемпотентно добавляет университет в список.
	AddUniversityToList(ctx context.Context, userID int64, list models.ListName, universityID int64) error
	// UpdateDashboardPhone обновляет телефон в кабинете.
	UpdateDashboardPhone(ctx context.Context, userID int64, phone string) error
}

// UniversityRepository нужен для проверки существования университета
// перед добавлением его в список.
type UniversityRepository interface {
	ReadUniversity(ctx context.Context, id int64) (*models.University, error)
}

// UserRepository нужен для частичного обновления имени и фамилии.
type UserRepository interface {
	UpdateUserName(ctx context.Context, userID int64, firstName, lastName *string) error
}

// Service реализует бизнес-логику личного кабинета.
type Service struct {
	repo         Repository
	universities UniversityRepository
	users        UserRepository
	log          *slog.Logger
}

// New создает новый Service личного кабинета.
func New(repo Repository, universities UniversityRepository, users UserRepository, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		universities: universities,
		users:        users,
		log:          log,
	}
}

// Get возвращает кабинет пользователя, создавая его при первом обращении.
func (s *Service) Get(ctx context.Context, userID int64) (*models.Dashboard, error) {
	return s.repo.GetOrCreateDashboard(ctx, userID)
}

// AddToList добавляет существующий университет в один из пяти списков
// кабинета и возвращает обновлённый кабинет. Повторное добавление того же
// университета — no-op. Порядок проверок: существование университета,
// затем имя списка.
func (s *Service) AddToList(ctx context.Context, userID int64, req models.DummyListEntry) (*models.Dashboard, error) {
	if _, err := s.universities.ReadUniversity(ctx, req.UniversityID); err != nil {
		return nil, err
	}
	list, err := models.ParseListName(req.ListName)
	if err != nil {
		return nil, ErrInvalidListName
	}

	if _, err := s.repo.GetOrCreateDashboard(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.AddUniversityToList(ctx, userID, list, req.UniversityID); err != nil {
		return nil, err
	}
	s.log.Info("added university to list",
		slog.Int64("user_id", userID),
		slog.Int64("university_id", req.UniversityID),
		slog.String("list", string(list)))

	return s.repo.GetDashboard(ctx, userID)
}

// UpdateProfile частично обновляет имя, фамилию и телефон пользователя
// и возвращает полный обновлённый кабинет.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req models.DummyProfileUpdate) (*models.Dashboard, error) {
	if _, err := s.repo.GetOrCreateDashboard(ctx, userID); err != nil {
		return nil, err
	}
	if req.FirstName != nil || req.LastName != nil {
		if err := s.users.UpdateUserName(ctx, userID, req.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}
	if req.PhoneNumber != nil {
		if err := s.repo.UpdateDashboardPhone(ctx, userID, *req.PhoneNumber); err != nil {
			return nil, err
		}
	}
	return s.repo.GetDashboard(ctx, userID)
}

// GetSubscription возвращает статус и дату окончания подписки пользователя
// без создания кабинета: отсутствие кабинета — отказ в доступе,
// а не повод его завести.
func (s *Service) GetSubscription(ctx context.Context, userID int64) (string, *time.Time, error) {
	d, err := s.repo.GetDashboard(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return d.SubscriptionStatus, d.SubscriptionEndDate, nil
}
