// Package services содержит бизнес-логику справочника пользователей:
// создание с контролем уникальности email, чтение с жадной загрузкой связей,
// частичное обновление, мягкое удаление и привязка сервисов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает активного пользователя по ID или errs.ErrUserNotFound.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail возвращает активного пользователя по email или errs.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает всех активных пользователей с привязанными сервисами.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUser применяет частичное обновление и возвращает количество изменённых строк.
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (int, error)
	// SoftDeleteUser помечает пользователя удалённым и возвращает количество затронутых строк.
	SoftDeleteUser(ctx context.Context, id string) (int, error)
	// AddUserServices привязывает сервисы к пользователю без дублирования связей.
	AddUserServices(ctx context.Context, userID string, serviceIDs []string) error
	// ListUserServices возвращает активные сервисы пользователя.
	ListUserServices(ctx context.Context, userID string) ([]*models.Service, error)
	// GetServicesByIDs возвращает активные сервисы с id из набора.
	GetServicesByIDs(ctx context.Context, ids []string) ([]*models.Service, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserService реализует бизнес-логику работы с пользователями, включая кеширование чтений.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// FindAll возвращает всех активных пользователей с привязанными сервисами.
// Пагинации нет — ограничение унаследовано от исходного поведения,
// на больших объёмах выборку стоит ограничивать.
func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// FindOne возвращает активного пользователя с сервисами, используя кеш или репозиторий.
func (s *UserService) FindOne(ctx context.Context, id string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("user:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Services, err = s.repo.ListUserServices(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// FindByEmail возвращает активного пользователя или nil без ошибки, если его нет.
// Используется проверками уникальности и аутентификацией, поэтому промах — не ошибка.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, errs.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create регистрирует нового пользователя: проверяет занятость email среди
// активных записей, хэширует пароль и сохраняет запись.
// Проверка занятости — быстрый путь для понятной ошибки, гонку закрывает
// уникальный индекс в хранилище.
func (s *UserService) Create(ctx context.Context, name, email, rawPassword, role string) (*models.User, error) {
	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	created.Services = []*models.Service{}

	s.log.Info("created new user", slog.String("id", created.ID))
	return created, nil
}

// Update применяет частичное обновление и возвращает обновлённую запись со связями.
// Уникальность email здесь повторно не проверяется — путь доверен администратору,
// гонку всё равно закрывает индекс хранилища.
func (s *UserService) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	affected, err := s.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errs.ErrUserNotFound
	}

	cacheKey := fmt.Sprintf("user:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.FindOne(ctx, id)
}

// Delete помечает пользователя удалённым. Связи с сервисами сохраняются,
// но пользователь исчезает из всех выборок активных записей.
func (s *UserService) Delete(ctx context.Context, id string) error {
	cacheKey := fmt.Sprintf("user:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	affected, err := s.repo.SoftDeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrUserNotFound
	}

	s.log.Info("soft-deleted user", slog.String("id", id))
	return nil
}

// AssignServices привязывает набор сервисов к пользователю.
// Набор разрешается целиком: любой неизвестный id отменяет операцию,
// частичная привязка не выполняется. Уже привязанный сервис не дублируется.
func (s *UserService) AssignServices(ctx context.Context, userID string, serviceIDs []string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(serviceIDs) {
		return nil, errs.ErrServiceNotFound
	}

	if err = s.repo.AddUserServices(ctx, userID, serviceIDs); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("user:%s", userID)
	if err = s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	user.Services, err = s.repo.ListUserServices(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info("assigned services to user",
		slog.String("user_id", userID), slog.Int("count", len(serviceIDs)))
	return user, nil
}
