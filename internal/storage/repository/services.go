package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// CreateService вставляет новый сервис и в той же транзакции привязывает его
// к создавшему пользователю. Нарушение уникального индекса (name, category)
// среди активных записей транслируется в errs.ErrServiceExists.
func (s *Storage) CreateService(ctx context.Context, service models.Service, creatorID string) (*models.Service, error) {
	const op = "storage.CreateService"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO services (name, description, cost, category)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	created := service
	if err = tx.QueryRowContext(ctx, query,
		service.Name, service.Description, service.Cost, service.Category).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrServiceExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	linkQuery := `INSERT INTO user_services (user_id, service_id) VALUES ($1, $2)`
	if _, err = tx.ExecContext(ctx, linkQuery, creatorID, created.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListAllServices возвращает все активные сервисы без пагинации.
// Используется внутренними вызовами, роль вызывающего здесь не проверяется.
func (s *Storage) ListAllServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.ListAllServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, cost, category, created_at, updated_at
			  FROM services
			  WHERE deleted_at IS NULL
			  ORDER BY created_at, id`
	return s.queryServices(ctx, op, query)
}

// ListServices возвращает страницу всех активных сервисов.
// Порядок стабильный: по дате создания, затем по id.
func (s *Storage) ListServices(ctx context.Context, limit, offset int) ([]*models.Service, error) {
	const op = "storage.ListServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, cost, category, created_at, updated_at
			  FROM services
			  WHERE deleted_at IS NULL
			  ORDER BY created_at, id
			  LIMIT $1 OFFSET $2`
	return s.queryServices(ctx, op, query, limit, offset)
}

// ListServicesByUser возвращает страницу активных сервисов, привязанных
// к пользователю. Внутреннее соединение: сервис без связи с пользователем
// в выборку не попадает.
func (s *Storage) ListServicesByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Service, error) {
	const op = "storage.ListServicesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sv.id, sv.name, sv.description, sv.cost, sv.category,
			      sv.created_at, sv.updated_at
			  FROM services sv
			  JOIN user_services us ON us.service_id = sv.id
			  WHERE us.user_id = $1 AND sv.deleted_at IS NULL
			  ORDER BY sv.created_at, sv.id
			  LIMIT $2 OFFSET $3`
	return s.queryServices(ctx, op, query, userID, limit, offset)
}

// ListUserServices возвращает все активные сервисы пользователя без пагинации.
// Используется для жадной загрузки связей в записи пользователя.
func (s *Storage) ListUserServices(ctx context.Context, userID string) ([]*models.Service, error) {
	const op = "storage.ListUserServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sv.id, sv.name, sv.description, sv.cost, sv.category,
			      sv.created_at, sv.updated_at
			  FROM services sv
			  JOIN user_services us ON us.service_id = sv.id
			  WHERE us.user_id = $1 AND sv.deleted_at IS NULL
			  ORDER BY sv.created_at, sv.id`
	return s.queryServices(ctx, op, query, userID)
}

// GetServicesByIDs возвращает активные сервисы с id из набора.
// Количество найденных записей может быть меньше запрошенного —
// проверка полноты набора остаётся за вызывающим.
func (s *Storage) GetServicesByIDs(ctx context.Context, ids []string) ([]*models.Service, error) {
	const op = "storage.GetServicesByIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if len(ids) == 0 {
		return []*models.Service{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT id, name, description, cost, category, created_at, updated_at
			  FROM services
			  WHERE id IN (%s) AND deleted_at IS NULL
			  ORDER BY created_at, id`, strings.Join(placeholders, ", "))
	return s.queryServices(ctx, op, query, args...)
}

// ServiceExists сообщает, есть ли активный сервис с такой парой (name, category).
// Быстрая проверка для понятной ошибки; гарантия корректности при гонке —
// уникальный индекс, нарушение которого ловит CreateService.
func (s *Storage) ServiceExists(ctx context.Context, name, category string) (bool, error) {
	const op = "storage.ServiceExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM services
			      WHERE name = $1 AND category = $2 AND deleted_at IS NULL
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, name, category).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// SoftDeleteService помечает сервис удалённым и возвращает количество
// затронутых строк.
func (s *Storage) SoftDeleteService(ctx context.Context, id string) (int, error) {
	const op = "storage.SoftDeleteService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services
			  SET deleted_at = now()
			  WHERE id = $1 AND deleted_at IS NULL`
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

func (s *Storage) queryServices(ctx context.Context, op, query string, args ...any) ([]*models.Service, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Service{}
	for rows.Next() {
		var item models.Service
		if err = rows.Scan(&item.ID, &item.Name, &item.Description, &item.Cost,
			&item.Category, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
