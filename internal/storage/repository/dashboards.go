package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/unifinder/uni-finder/internal/models"
)

// listTable возвращает имя join-таблицы для списка кабинета. Явный switch
// вместо подстановки имени списка в SQL: набор таблиц закрытый.
func listTable(list models.ListName) (string, error) {
	switch list {
	case models.ListFavorites:
		return "dashboard_favorites", nil
	case models.ListPlanningToApply:
		return "dashboard_planning_to_apply", nil
	case models.ListApplied:
		return "dashboard_applied", nil
	case models.ListAccepted:
		return "dashboard_accepted", nil
	case models.ListVisaApproved:
		return "dashboard_visa_approved", nil
	default:
		return "", fmt.Errorf("invalid list name: %s", list)
	}
}

// GetOrCreateDashboard возвращает личный кабинет пользователя вместе со
// всеми пятью списками, создавая пустой кабинет, если его ещё нет.
func (s *Storage) GetOrCreateDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	const op = "storage.GetOrCreateDashboard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO dashboards (user_id, subscription_status)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, models.SubscriptionNone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// GetDashboard возвращает кабинет пользователя или ErrNotFound, если его нет.
func (s *Storage) GetDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	const op = "storage.GetDashboard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, subscription_status, subscription_end_date, phone_number
			  FROM dashboards WHERE user_id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	d := &models.Dashboard{}
	var endDate sql.NullTime
	var phone sql.NullString
	if err := row.Scan(&d.UserID, &d.SubscriptionStatus, &endDate, &phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		d.SubscriptionEndDate = &endDate.Time
	}
	if phone.Valid {
		d.PhoneNumber = phone.String
	}

	lists := []struct {
		name models.ListName
		dst  *[]*models.University
	}{
		{models.ListFavorites, &d.Favorites},
		{models.ListPlanningToApply, &d.PlanningToApply},
		{models.ListApplied, &d.Applied},
		{models.ListAccepted, &d.Accepted},
		{models.ListVisaApproved, &d.VisaApproved},
	}
	for _, l := range lists {
		entries, err := s.listUniversitiesOf(ctx, userID, l.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		*l.dst = entries
	}
	return d, nil
}

func (s *Storage) listUniversitiesOf(ctx context.Context, userID int64, list models.ListName) ([]*models.University, error) {
	table, err := listTable(list)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + universityColumns + `
			  FROM universities u
			  JOIN ` + table + ` l ON l.university_id = u.id
			  WHERE l.user_id = $1
			  ORDER BY u.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AddUniversityToList добавляет университет в список кабинета.
// Повторное добавление — no-op за счёт ON CONFLICT DO NOTHING.
func (s *Storage) AddUniversityToList(ctx context.Context, userID int64, list models.ListName, universityID int64) error {
	const op = "storage.AddUniversityToList"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := listTable(list)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO ` + table + ` (user_id, university_id)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, universityID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateDashboardPhone обновляет телефон в кабинете пользователя.
func (s *Storage) UpdateDashboardPhone(ctx context.Context, userID int64, phone string) error {
	const op = "storage.UpdateDashboardPhone"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE dashboards SET phone_number = $1 WHERE user_id = $2`
	if _, err := s.DB.ExecContext(ctx, query, phone, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ExtendSubscription выставляет статус подписки active и новую дату её
// окончания одним обновлением строки кабинета.
func (s *Storage) ExtendSubscription(ctx context.Context, userID int64, endDate time.Time) error {
	const op = "storage.ExtendSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE dashboards
			  SET subscription_status = $1, subscription_end_date = $2
			  WHERE user_id = $3`
	if _, err := s.DB.ExecContext(ctx, query, models.SubscriptionActive, endDate, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
