package models

import (
	"fmt"
	"time"
)

// Статусы подписки личного кабинета.
const (
	SubscriptionNone    = "none"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// ListName — имя одного из пяти списков университетов личного кабинета.
// Используется явный enum вместо динамического выбора поля по строке.
type ListName string

// Пять списков личного кабинета. Членство в списках независимое:
// университет может находиться в любом их подмножестве одновременно.
const (
	ListFavorites       ListName = "favorites"
	ListPlanningToApply ListName = "planning_to_apply"
	ListApplied         ListName = "applied"
	ListAccepted        ListName = "accepted"
	ListVisaApproved    ListName = "visa_approved"
)

// ParseListName проверяет, что строка является именем одного из пяти
// списков, и возвращает соответствующий ListName.
func ParseListName(s string) (ListName, error) {
	switch ListName(s) {
	case ListFavorites, ListPlanningToApply, ListApplied, ListAccepted, ListVisaApproved:
		return ListName(s), nil
	default:
		return "", fmt.Errorf("invalid list name: %s", s)
	}
}

// Dashboard представляет личный кабинет пользователя: пять списков
// университетов и состояние подписки. Кабинет создаётся вместе с учётной
// записью, но при чтении всегда применяется get-or-create на случай,
// если запись по какой-то причине отсутствует.
type Dashboard struct {
	UserID              int64         // Владелец кабинета
	SubscriptionStatus  string        // none, active или expired
	SubscriptionEndDate *time.Time    // Дата окончания подписки (nil — не оплачивалась)
	PhoneNumber         string        // Телефон для связи
	Favorites           []*University // Избранное
	PlanningToApply     []*University // Планирует подать заявку
	Applied             []*University // Заявка подана
	Accepted            []*University // Принят
	VisaApproved        []*University // Виза одобрена
}

// DummyListEntry используется для приёма запроса на добавление
// университета в один из списков кабинета.
type DummyListEntry struct {
	UniversityID int64  `json:"university_id" validate:"required,gt=0"`
	ListName     string `json:"list_name" validate:"required"`
}

// DummyProfileUpdate используется для частичного обновления профиля.
// Nil-поле означает "не менять".
type DummyProfileUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}
