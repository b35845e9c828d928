// Package models содержит доменные структуры сервиса (продукта/подписки),
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Service представляет сервис, на который могут быть подписаны пользователи.
//
// Пара (Name, Category) уникальна среди активных записей.
type Service struct {
	ID          string     `json:"id"`          // Уникальный идентификатор сервиса
	Name        string     `json:"name"`        // Название сервиса
	Description string     `json:"description"` // Описание сервиса
	Cost        float64    `json:"cost"`        // Стоимость сервиса, неотрицательная
	Category    string     `json:"category"`    // Категория сервиса
	CreatedAt   time.Time  `json:"created_at"`  // Дата создания записи
	UpdatedAt   time.Time  `json:"updated_at"`  // Дата последнего обновления
	DeletedAt   *time.Time `json:"-"`           // Отметка мягкого удаления
}

// DummyService используется для приёма данных нового сервиса из JSON-запроса,
// прежде чем конвертировать их в Service.
type DummyService struct {
	Name        string  `json:"name" validate:"required"`        // Название сервиса
	Description string  `json:"description"`                     // Описание (может быть пустым)
	Cost        float64 `json:"cost" validate:"min=0"`           // Стоимость (>= 0)
	Category    string  `json:"category" validate:"required"`    // Категория
}
