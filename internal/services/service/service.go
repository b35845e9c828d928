// Package services содержит бизнес-логику каталога сервисов: создание
// с контролем уникальности пары (name, category), ролевые постраничные
// выборки и мягкое удаление.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// ServiceRepository определяет методы для работы с сервисами в хранилище.
type ServiceRepository interface {
	// CreateService вставляет сервис и привязывает его к создавшему пользователю.
	CreateService(ctx context.Context, service models.Service, creatorID string) (*models.Service, error)
	// ServiceExists сообщает, есть ли активный сервис с такой парой (name, category).
	ServiceExists(ctx context.Context, name, category string) (bool, error)
	// ListAllServices возвращает все активные сервисы без пагинации.
	ListAllServices(ctx context.Context) ([]*models.Service, error)
	// ListServices возвращает страницу всех активных сервисов.
	ListServices(ctx context.Context, limit, offset int) ([]*models.Service, error)
	// ListServicesByUser возвращает страницу сервисов, привязанных к пользователю.
	ListServicesByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Service, error)
	// SoftDeleteService помечает сервис удалённым и возвращает количество затронутых строк.
	SoftDeleteService(ctx context.Context, id string) (int, error)
}

// UserGetter разрешает создателя сервиса в активного пользователя.
type UserGetter interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// ServiceService реализует бизнес-логику работы с каталогом сервисов.
type ServiceService struct {
	repo  ServiceRepository
	users UserGetter
	log   *slog.Logger
}

// NewServiceService создает новый экземпляр ServiceService.
func NewServiceService(repo ServiceRepository, users UserGetter, log *slog.Logger) *ServiceService {
	return &ServiceService{
		repo:  repo,
		users: users,
		log:   log,
	}
}

// FindAll возвращает все активные сервисы. Ролевой фильтрации здесь нет —
// выборку наружу должен закрывать транспортный слой.
func (s *ServiceService) FindAll(ctx context.Context) ([]*models.Service, error) {
	return s.repo.ListAllServices(ctx)
}

// Create создает сервис и автоматически подписывает на него создателя.
// Дубликат пары (name, category) среди активных сервисов — конфликт,
// несуществующий или удалённый создатель — не найден.
func (s *ServiceService) Create(ctx context.Context, req models.DummyService, creatorID string) (*models.Service, error) {
	exists, err := s.repo.ServiceExists(ctx, req.Name, req.Category)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.ErrServiceExists
	}

	if _, err = s.users.GetUser(ctx, creatorID); err != nil {
		return nil, err
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Category:    req.Category,
	}
	created, err := s.repo.CreateService(ctx, service, creatorID)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new service",
		slog.String("id", created.ID), slog.String("creator_id", creatorID))
	return created, nil
}

// ListByUserAndRole возвращает страницу сервисов в зависимости от роли.
// Администратор видит страницу всех сервисов, userID при этом игнорируется —
// это намеренный обход ограничения видимости. Обычный пользователь видит
// только привязанные к userID сервисы.
func (s *ServiceService) ListByUserAndRole(ctx context.Context, userID string, page, limit int, role string) ([]*models.Service, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	if role == models.RoleAdmin {
		return s.repo.ListServices(ctx, limit, offset)
	}
	return s.repo.ListServicesByUser(ctx, userID, limit, offset)
}

// Delete помечает сервис удалённым.
func (s *ServiceService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.SoftDeleteService(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrServiceNotFound
	}

	s.log.Info("soft-deleted service", slog.String("id", id))
	return nil
}
