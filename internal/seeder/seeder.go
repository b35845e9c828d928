// Package seeder наполняет базу стартовым набором пользователей и сервисов.
//
// Повторный запуск безопасен: конфликты уникальности логируются и пропускаются.
package seeder

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	"github.com/magabrotheeeer/account-service/internal/storage/repository"
)

// Seeder записывает стартовые данные через хранилище.
type Seeder struct {
	db  *repository.Storage
	log *slog.Logger
}

// New создает новый экземпляр Seeder.
func New(db *repository.Storage, log *slog.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

type seedService struct {
	name        string
	description string
	cost        float64
	category    string
}

var seedUsers = []seedUser{
	{"Admin", "admin@example.com", "Admin123!", models.RoleAdmin},
	{"Alice Johnson", "alice@example.com", "Alice123!", models.RoleUser},
	{"Bob Smith", "bob@example.com", "Bob12345!", models.RoleUser},
}

var seedServices = []seedService{
	{"Netflix", "Video streaming", 15.99, "entertainment"},
	{"Spotify", "Music streaming", 9.99, "entertainment"},
	{"GitHub Pro", "Developer tooling", 4.00, "development"},
	{"Dropbox Plus", "Cloud storage", 11.99, "storage"},
	{"Notion Plus", "Team workspace", 8.00, "productivity"},
}

// Run записывает пользователей последовательно, затем сервисы параллельно.
func (s *Seeder) Run(ctx context.Context) error {
	const op = "seeder.Run"

	var adminID string
	for _, u := range seedUsers {
		hash, err := password.GetHash(u.password)
		if err != nil {
			return err
		}
		created, err := s.db.CreateUser(ctx, models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
		})
		if errors.Is(err, errs.ErrEmailTaken) {
			s.log.Info("user already seeded", slog.String("email", u.email))
			continue
		}
		if err != nil {
			return err
		}
		if created.Role == models.RoleAdmin && adminID == "" {
			adminID = created.ID
		}
		s.log.Info("user seeded", slog.String("email", created.Email), slog.String("id", created.ID))
	}

	if adminID == "" {
		s.log.Warn("no admin created in this run, seeding services without owner links")
	}

	var wg sync.WaitGroup
	for _, svc := range seedServices {
		wg.Add(1)
		go func(svc seedService) {
			defer wg.Done()
			s.seedService(ctx, svc, adminID)
		}(svc)
	}
	wg.Wait()

	s.log.Info("seeding finished", slog.String("op", op))
	return nil
}

func (s *Seeder) seedService(ctx context.Context, svc seedService, ownerID string) {
	exists, err := s.db.ServiceExists(ctx, svc.name, svc.category)
	if err != nil {
		s.log.Error("failed to check service", slog.String("name", svc.name), sl.Err(err))
		return
	}
	if exists {
		s.log.Info("service already seeded", slog.String("name", svc.name))
		return
	}
	if ownerID == "" {
		s.log.Warn("skip service without owner", slog.String("name", svc.name))
		return
	}

	created, err := s.db.CreateService(ctx, models.Service{
		Name:        svc.name,
		Description: svc.description,
		Cost:        svc.cost,
		Category:    svc.category,
	}, ownerID)
	if errors.Is(err, errs.ErrServiceExists) {
		s.log.Info("service already seeded", slog.String("name", svc.name))
		return
	}
	if err != nil {
		s.log.Error("failed to seed service", slog.String("name", svc.name), sl.Err(err))
		return
	}
	s.log.Info("service seeded", slog.String("name", created.Name), slog.String("id", created.ID))
}
