// Package txref реализует генерацию и разбор ссылок транзакций платёжного
// шлюза. Ссылка имеет вид "unifinder-<user_id>-<uuid>": второй сегмент
// кодирует владельца платежа, что позволяет webhook-обработчику найти
// пользователя без отдельной таблицы соответствий.
package txref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Prefix — первый сегмент каждой ссылки транзакции.
const Prefix = "unifinder"

// New генерирует уникальную ссылку транзакции для пользователя.
func New(userID int64) string {
	return fmt.Sprintf("%s-%d-%s", Prefix, userID, uuid.New().String())
}

// UserID извлекает идентификатор пользователя из второго сегмента ссылки.
// Случайный uuid-хвост сам содержит дефисы, поэтому разбиение ограничено
// тремя частями.
func UserID(ref string) (int64, error) {
	const op = "txref.UserID"
	parts := strings.SplitN(ref, "-", 3)
	if len(parts) < 3 {
		return 0, fmt.Errorf("%s: malformed transaction reference: %s", op, ref)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
