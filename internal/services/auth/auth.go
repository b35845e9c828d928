// Package services содержит логику бизнес-уровня для аутентификации пользователей.
package services

import (
	"context"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// UserDirectory описывает контракт справочника пользователей,
// достаточный для аутентификации и регистрации.
type UserDirectory interface {
	// FindByEmail возвращает активного пользователя или nil без ошибки, если его нет.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create регистрирует пользователя, хэшируя пароль перед сохранением.
	Create(ctx context.Context, name, email, rawPassword, role string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и проверку учетных данных.
type AuthService struct {
	users    UserDirectory
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserDirectory, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и генерирует JWT с email, ролью
// и id пользователя в claims.
//
// Неизвестный email и неверный пароль различаются: первый — errs.ErrUserNotFound,
// второй — errs.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", errs.ErrUserNotFound
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errs.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.ID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Register создает нового пользователя с дефолтной ролью "user".
// Занятый активным пользователем email — конфликт.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	return s.users.Create(ctx, name, email, rawPassword, models.RoleUser)
}

// ValidateUser проверяет учетные данные для альтернативных стратегий входа.
// Возвращает nil без ошибки и при неизвестном email, и при неверном пароле:
// исход намеренно не различается, чтобы не раскрывать существование учетной записи.
func (s *AuthService) ValidateUser(ctx context.Context, email, rawPassword string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil
	}
	return user, nil
}
