package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает запись с полями,
// сгенерированными базой. Нарушение уникального индекса email среди активных
// записей транслируется в errs.ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	created := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUser возвращает активного пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE id = $1 AND deleted_at IS NULL`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает активного пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE email = $1 AND deleted_at IS NULL`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех активных пользователей с привязанными сервисами.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE deleted_at IS NULL
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	byID := make(map[string]*models.User)
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Services = []*models.Service{}
		result = append(result, &u)
		byID[u.ID] = &u
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	joinQuery := `SELECT us.user_id, sv.id, sv.name, sv.description, sv.cost, sv.category,
			          sv.created_at, sv.updated_at
			      FROM user_services us
			      JOIN services sv ON sv.id = us.service_id AND sv.deleted_at IS NULL
			      ORDER BY sv.created_at, sv.id`
	joinRows, err := s.DB.QueryContext(ctx, joinQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = joinRows.Close()
	}()

	for joinRows.Next() {
		var userID string
		var sv models.Service
		if err = joinRows.Scan(&userID, &sv.ID, &sv.Name, &sv.Description, &sv.Cost,
			&sv.Category, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if u, ok := byID[userID]; ok {
			u.Services = append(u.Services, &sv)
		}
	}
	if err = joinRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser применяет частичное обновление к активному пользователю
// и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = COALESCE($1, name),
			      email = COALESCE($2, email),
			      role = COALESCE($3, role),
			      updated_at = now()
			  WHERE id = $4 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, upd.Name, upd.Email, upd.Role, id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, errs.ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SoftDeleteUser помечает пользователя удалённым и возвращает количество
// затронутых строк. Связи с сервисами не удаляются.
func (s *Storage) SoftDeleteUser(ctx context.Context, id string) (int, error) {
	const op = "storage.SoftDeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
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

// AddUserServices привязывает набор сервисов к пользователю.
// Уже существующие связи не дублируются: составной первичный ключ
// и ON CONFLICT DO NOTHING делают операцию идемпотентной.
func (s *Storage) AddUserServices(ctx context.Context, userID string, serviceIDs []string) error {
	const op = "storage.AddUserServices"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if len(serviceIDs) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO user_services (user_id, service_id) VALUES `)
	args := make([]any, 0, len(serviceIDs)+1)
	args = append(args, userID)
	for i, serviceID := range serviceIDs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($1, $%d)", i+2)
		args = append(args, serviceID)
	}
	b.WriteString(` ON CONFLICT DO NOTHING`)

	if _, err := s.DB.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
