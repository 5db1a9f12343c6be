package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unifinder/uni-finder/internal/models"
)

// RegisterUser сохраняет нового пользователя и в той же транзакции создаёт
// его личный кабинет: у каждой учётной записи кабинет ровно один и он
// появляется в момент регистрации. Возвращает ID пользователя.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	query := `INSERT INTO users (username, email, password_hash, role, first_name, last_name, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role,
		user.FirstName, user.LastName).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO dashboards (user_id, subscription_status) VALUES ($1, $2)`
	if _, err = tx.ExecContext(ctx, query, newID, models.SubscriptionNone); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

const userColumns = `id, username, email, password_hash, role, first_name, last_name,
			      is_active, last_login, created_at`

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return s.getUser(ctx, op, query, username)
}

// GetUserByID возвращает пользователя по его числовому ID.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getUser(ctx, op, query, id)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)

	var lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.IsActive, &lastLogin, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// UpdateLastLogin фиксирует время последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userID int64) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateUserName частично обновляет имя и фамилию пользователя:
// nil-поле оставляет прежнее значение.
func (s *Storage) UpdateUserName(ctx context.Context, userID int64, firstName, lastName *string) error {
	const op = "storage.UpdateUserName"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET first_name = COALESCE($1, first_name),
			      last_name = COALESCE($2, last_name)
			  WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, firstName, lastName, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountUsersStats собирает статистику по пользователям для админ-панели.
func (s *Storage) CountUsersStats(ctx context.Context) (total, applied, recentLogins, inactive int, err error) {
	const op = "storage.CountUsersStats"
	select {
	case <-ctx.Done():
		return 0, 0, 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(DISTINCT user_id) FROM dashboard_applied),
			      (SELECT COUNT(*) FROM users WHERE last_login IS NOT NULL AND last_login >= NOW() - INTERVAL '30 days'),
			      (SELECT COUNT(*) FROM users WHERE is_active = FALSE)`
	if err = s.DB.QueryRowContext(ctx, query).Scan(&total, &applied, &recentLogins, &inactive); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, applied, recentLogins, inactive, nil
}

// CountDashboardsByStatus возвращает количество кабинетов с заданным
// статусом подписки.
func (s *Storage) CountDashboardsByStatus(ctx context.Context, status string) (int, error) {
	const op = "storage.CountDashboardsByStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM dashboards WHERE subscription_status = $1`
	if err := s.DB.QueryRowContext(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
