// Package models содержит доменные структуры приложения: университеты,
// пользователи и личные кабинеты, а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// University представляет запись об университете в каталоге.
// Даты дедлайнов могут отсутствовать (nil), списки программ и стипендий
// хранятся в базе как jsonb-массивы строк.
type University struct {
	ID                int64      // Уникальный идентификатор
	Name              string     // Название университета
	Country           string     // Страна
	City              string     // Город (может быть пустым)
	ApplicationFee    float64    // Сбор за подачу заявки
	TuitionFee        float64    // Стоимость обучения
	DeadlineUndergrad *time.Time // Дедлайн подачи на бакалавриат
	DeadlineGrad      *time.Time // Дедлайн подачи в магистратуру
	BachelorPrograms  []string   // Программы бакалавриата
	MastersPrograms   []string   // Программы магистратуры
	Scholarships      []string   // Доступные стипендии
	UniversityLink    string     // Ссылка на сайт университета
	ApplicationLink   string     // Ссылка на форму подачи заявки
	Description       string     // Описание
}

// DummyUniversity используется для приёма данных об университете из
// JSON-запроса, прежде чем конвертировать их в University.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyUniversity struct {
	Name              string   `json:"name" validate:"required"`
	Country           string   `json:"country" validate:"required"`
	City              string   `json:"city"`
	ApplicationFee    float64  `json:"application_fee" validate:"gte=0"`
	TuitionFee        float64  `json:"tuition_fee" validate:"gte=0"`
	DeadlineUndergrad string   `json:"deadline_undergrad"`
	DeadlineGrad      string   `json:"deadline_grad"`
	BachelorPrograms  []string `json:"bachelor_programs"`
	MastersPrograms   []string `json:"masters_programs"`
	Scholarships      []string `json:"scholarships"`
	UniversityLink    string   `json:"university_link" validate:"required,url"`
	ApplicationLink   string   `json:"application_link" validate:"required,url"`
	Description       string   `json:"description"`
}

// UniversityFilter описывает необязательные фильтры списка университетов.
type UniversityFilter struct {
	Country       string
	City          string
	MaxTuitionFee *float64
	Limit         int
	Offset        int
}
