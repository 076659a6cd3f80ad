// Package models содержит доменные структуры: пользователи, залы (тенанты),
// записи подписки, фичефлаги и описания пунктов навигационного меню,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Role роль пользователя в рамках зала.
type Role string

// Допустимые роли. Любое другое значение — ошибка контракта на стороне
// вызывающего кода, а не данных.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleOwner      Role = "owner"
	RoleStaff      Role = "staff"
	RoleMember     Role = "member"
)

// User представляет пользователя системы. GymUID может быть nil —
// супер-администратор не привязан к конкретному залу.
type User struct {
	UUID         string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	Role         Role       // Роль пользователя
	GymUID       *string    // Идентификатор зала, к которому привязан пользователь
	CreatedAt    time.Time  // Дата создания учётной записи
}

// Gym представляет зал — тенант системы. Залу принадлежат его
// фичефлаги и запись подписки.
type Gym struct {
	UID       string    // Уникальный идентификатор зала
	Name      string    // Название зала
	CreatedAt time.Time // Дата регистрации зала
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required,min=8"`    // Пароль
	GymName  string `json:"gym_name" validate:"required"`          // Название зала
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required"`          // Пароль
}
