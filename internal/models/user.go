// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, роль и отметки жизненного цикла.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Модель двухуровневая: admin видит и изменяет всё,
// user работает только со своими данными.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
//
// Поле DeletedAt — отметка мягкого удаления: nil для активной записи.
// Поле PasswordHash никогда не сериализуется наружу.
type User struct {
	ID           string     `json:"id"`         // Уникальный идентификатор пользователя
	Name         string     `json:"name"`       // Имя пользователя
	Email        string     `json:"email"`      // Электронная почта (уникальна среди активных)
	PasswordHash string     `json:"-"`          // Хэш пароля пользователя
	Role         string     `json:"role"`       // Роль пользователя, admin или user
	CreatedAt    time.Time  `json:"created_at"` // Дата создания записи
	UpdatedAt    time.Time  `json:"updated_at"` // Дата последнего обновления
	DeletedAt    *time.Time `json:"-"`          // Отметка мягкого удаления
	Services     []*Service `json:"services"`   // Привязанные сервисы (many-to-many)
}

// UserUpdate описывает частичное обновление пользователя.
// nil-поле означает "оставить без изменений".
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}
