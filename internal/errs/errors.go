// Package errs определяет сентинельные ошибки бизнес-уровня.
// Хранилище и сервисы возвращают их обёрнутыми через %w, обработчики
// транспортного слоя переводят в HTTP-статусы через errors.Is.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound — активный пользователь с указанным id/email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrServiceNotFound — активный сервис не найден (в том числе любой id
	// из набора при массовом назначении).
	ErrServiceNotFound = errors.New("service not found")
	// ErrEmailTaken — email уже занят активным пользователем.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrServiceExists — активный сервис с такой парой (name, category) уже существует.
	ErrServiceExists = errors.New("service with the same name and category already exists")
	// ErrInvalidCredentials — пользователь найден, но пароль не совпал.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Message возвращает текст сентинельной ошибки без технических префиксов,
// пригодный для ответа клиенту. Неопознанные ошибки скрываются за общим текстом.
func Message(err error) string {
	for _, sentinel := range []error{
		ErrUserNotFound, ErrServiceNotFound, ErrEmailTaken, ErrServiceExists, ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}

// HTTPStatus возвращает HTTP-статус, соответствующий ошибке бизнес-уровня.
// Неопознанные ошибки считаются внутренними.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrServiceExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
