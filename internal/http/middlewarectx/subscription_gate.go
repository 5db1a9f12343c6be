package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/unifinder/uni-finder/internal/http/response"
	"github.com/unifinder/uni-finder/internal/lib/sl"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// gateDeniedMessage — фиксированный текст отказа шлюза подписки.
const gateDeniedMessage = "you do not have an active subscription or it has expired"

// SubscriptionProvider отдаёт статус и дату окончания подписки пользователя.
type SubscriptionProvider interface {
	GetSubscription(ctx context.Context, userID int64) (string, *time.Time, error)
}

// SubscriptionGateMiddleware создает middleware, пропускающий к платным
// данным только администраторов и пользователей с действующей подпиской.
// Статусу в базе шлюз не доверяет: дата окончания перепроверяется на
// каждом запросе, потому что статус и дата могут разойтись.
func SubscriptionGateMiddleware(log *slog.Logger, provider SubscriptionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionGateMiddleware"
			log := log.With(slog.String("op", op))

			userID, ok := r.Context().Value(UserID).(int64)
			if !ok || userID == 0 {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			// Администраторы проходят всегда.
			if role, _ := r.Context().Value(Role).(string); role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			status, endDate, err := provider.GetSubscription(r.Context(), userID)
			if err != nil {
				// Отсутствие кабинета — отказ, а не ошибка сервера.
				if errors.Is(err, repository.ErrNotFound) {
					log.Info("dashboard not found, access denied", slog.Int64("user_id", userID))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error(gateDeniedMessage))
					return
				}
				log.Error("failed to get subscription", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if status != models.SubscriptionActive || endDate == nil || endDate.Before(startOfToday()) {
				log.Info("subscription check failed, access denied",
					slog.Int64("user_id", userID),
					slog.String("status", status))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(gateDeniedMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// startOfToday возвращает сегодняшнюю дату с точностью до дня в UTC —
// с той же гранулярностью хранится дата окончания подписки.
func startOfToday() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
