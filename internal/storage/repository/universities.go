package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/unifinder/uni-finder/internal/models"
)

const universityColumns = `id, name, country, city, application_fee, tuition_fee,
			      deadline_undergrad, deadline_grad, bachelor_programs,
			      masters_programs, scholarships, university_link,
			      application_link, description`

// CreateUniversity вставляет новую запись об университете и возвращает её ID.
func (s *Storage) CreateUniversity(ctx context.Context, u models.University) (int64, error) {
	const op = "storage.CreateUniversity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	bachelor, masters, scholarships, err := marshalPrograms(u)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO universities (name, country, city, application_fee, tuition_fee,
			      deadline_undergrad, deadline_grad, bachelor_programs, masters_programs,
			      scholarships, university_link, application_link, description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var newID int64
	err = s.DB.QueryRowContext(ctx, query,
		u.Name, u.Country, u.City, u.ApplicationFee, u.TuitionFee,
		u.DeadlineUndergrad, u.DeadlineGrad, bachelor, masters,
		scholarships, u.UniversityLink, u.ApplicationLink, u.Description).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreateUniversities вставляет пачку университетов в одной транзакции.
// При любой ошибке транзакция откатывается и ни одна строка не сохраняется.
func (s *Storage) CreateUniversities(ctx context.Context, list []models.University) (int, error) {
	const op = "storage.CreateUniversities"
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

	query := `INSERT INTO universities (name, country, city, application_fee, tuition_fee,
			      deadline_undergrad, deadline_grad, bachelor_programs, masters_programs,
			      scholarships, university_link, application_link, description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, u := range list {
		bachelor, masters, scholarships, err := marshalPrograms(u)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if _, err = tx.ExecContext(ctx, query,
			u.Name, u.Country, u.City, u.ApplicationFee, u.TuitionFee,
			u.DeadlineUndergrad, u.DeadlineGrad, bachelor, masters,
			scholarships, u.UniversityLink, u.ApplicationLink, u.Description); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(list), nil
}

// ReadUniversity возвращает университет по его ID.
func (s *Storage) ReadUniversity(ctx context.Context, id int64) (*models.University, error) {
	const op = "storage.ReadUniversity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + universityColumns + ` FROM universities WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	u, err := scanUniversity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUniversity обновляет данные университета по его ID и возвращает
// количество изменённых строк.
func (s *Storage) UpdateUniversity(ctx context.Context, u models.University, id int64) (int, error) {
	const op = "storage.UpdateUniversity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	bachelor, masters, scholarships, err := marshalPrograms(u)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE universities
			  SET name = $1, country = $2, city = $3, application_fee = $4, tuition_fee = $5,
			      deadline_undergrad = $6, deadline_grad = $7, bachelor_programs = $8,
			      masters_programs = $9, scholarships = $10, university_link = $11,
			      application_link = $12, description = $13
			  WHERE id = $14`
	result, err := s.DB.ExecContext(ctx, query,
		u.Name, u.Country, u.City, u.ApplicationFee, u.TuitionFee,
		u.DeadlineUndergrad, u.DeadlineGrad, bachelor, masters,
		scholarships, u.UniversityLink, u.ApplicationLink, u.Description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveUniversity удаляет университет по ID и возвращает количество
// удалённых строк.
func (s *Storage) RemoveUniversity(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveUniversity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM universities WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListUniversities возвращает список университетов с необязательными
// фильтрами по стране, городу и максимальной стоимости обучения.
func (s *Storage) ListUniversities(ctx context.Context, filter models.UniversityFilter) ([]*models.University, error) {
	const op = "storage.ListUniversities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + universityColumns + ` FROM universities WHERE 1=1`
	var args []any
	if filter.Country != "" {
		args = append(args, filter.Country)
		query += ` AND country = $` + strconv.Itoa(len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		query += ` AND city = $` + strconv.Itoa(len(args))
	}
	if filter.MaxTuitionFee != nil {
		args = append(args, *filter.MaxTuitionFee)
		query += ` AND tuition_fee <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUniversities возвращает общее количество университетов в каталоге.
func (s *Storage) CountUniversities(ctx context.Context) (int, error) {
	const op = "storage.CountUniversities"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM universities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUniversity(row rowScanner) (*models.University, error) {
	var u models.University
	var deadlineUndergrad, deadlineGrad sql.NullTime
	var bachelor, masters, scholarships []byte

	if err := row.Scan(&u.ID, &u.Name, &u.Country, &u.City, &u.ApplicationFee,
		&u.TuitionFee, &deadlineUndergrad, &deadlineGrad, &bachelor,
		&masters, &scholarships, &u.UniversityLink, &u.ApplicationLink,
		&u.Description); err != nil {
		return nil, err
	}

	if deadlineUndergrad.Valid {
		u.DeadlineUndergrad = &deadlineUndergrad.Time
	}
	if deadlineGrad.Valid {
		u.DeadlineGrad = &deadlineGrad.Time
	}
	if err := json.Unmarshal(bachelor, &u.BachelorPrograms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(masters, &u.MastersPrograms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scholarships, &u.Scholarships); err != nil {
		return nil, err
	}
	return &u, nil
}

func marshalPrograms(u models.University) (bachelor, masters, scholarships []byte, err error) {
	if bachelor, err = json.Marshal(emptyIfNil(u.BachelorPrograms)); err != nil {
		return nil, nil, nil, err
	}
	if masters, err = json.Marshal(emptyIfNil(u.MastersPrograms)); err != nil {
		return nil, nil, nil, err
	}
	if scholarships, err = json.Marshal(emptyIfNil(u.Scholarships)); err != nil {
		return nil, nil, nil, err
	}
	return bachelor, masters, scholarships, nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
