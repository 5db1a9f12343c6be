// Package stats собирает агрегированную статистику для админ-панели.
package stats

import (
	"context"

	"github.com/unifinder/uni-finder/internal/models"
)

// Repository определяет агрегирующие запросы хранилища.
type Repository interface {
	// CountUsersStats возвращает счётчики по пользователям.
	CountUsersStats(ctx context.Context) (total, applied, recentLogins, inactive int, err error)
	// CountDashboardsByStatus возвращает число кабинетов с данным статусом.
	CountDashboardsByStatus(ctx context.Context, status string) (int, error)
	// CountUniversities возвращает размер каталога.
	CountUniversities(ctx context.Context) (int, error)
}

// Service реализует сбор статистики.
type Service struct {
	repo Repository
}

// New создает новый Service статистики.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Collect возвращает полный набор счётчиков админ-панели.
func (s *Service) Collect(ctx context.Context) (*models.Stats, error) {
	total, applied, recentLogins, inactive, err := s.repo.CountUsersStats(ctx)
	if err != nil {
		return nil, err
	}
	universities, err := s.repo.CountUniversities(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountDashboardsByStatus(ctx, models.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	expired, err := s.repo.CountDashboardsByStatus(ctx, models.SubscriptionExpired)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalUsers:           total,
		AppliedUsers:         applied,
		RecentLogins:         recentLogins,
		InactiveAccounts:     inactive,
		TotalUniversities:    universities,
		ActiveSubscriptions:  active,
		ExpiredSubscriptions: expired,
	}, nil
}
