package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64      // Уникальный числовой идентификатор
	Username     string     // Имя пользователя (уникальное)
	Email        string     // Электронная почта
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, admin или user
	FirstName    string     // Имя
	LastName     string     // Фамилия
	IsActive     bool       // Признак активной учётной записи
	LastLogin    *time.Time // Время последнего входа
	CreatedAt    time.Time  // Время регистрации
}

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Stats содержит агрегированную статистику для административной панели.
type Stats struct {
	TotalUsers           int `json:"total_users"`
	AppliedUsers         int `json:"applied_users"`
	RecentLogins         int `json:"recent_logins"`
	InactiveAccounts     int `json:"inactive_accounts"`
	TotalUniversities    int `json:"total_universities"`
	ActiveSubscriptions  int `json:"active_subscriptions"`
	ExpiredSubscriptions int `json:"expired_subscriptions"`
}
