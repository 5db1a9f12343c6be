// Package unifinder предоставляет маршруты для основного приложения.
package unifinder

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/unifinder/uni-finder/internal/http/handlers/auth/login"
	"github.com/unifinder/uni-finder/internal/http/handlers/auth/register"
	dashboardaddentry "github.com/unifinder/uni-finder/internal/http/handlers/dashboard/addentry"
	dashboardget "github.com/unifinder/uni-finder/internal/http/handlers/dashboard/get"
	"github.com/unifinder/uni-finder/internal/http/handlers/dashboard/updateprofile"
	"github.com/unifinder/uni-finder/internal/http/handlers/health"
	"github.com/unifinder/uni-finder/internal/http/handlers/payment/paymentinit"
	"github.com/unifinder/uni-finder/internal/http/handlers/payment/paymentwebhook"
	"github.com/unifinder/uni-finder/internal/http/handlers/stats"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/bulkcreate"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/create"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/list"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/read"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/remove"
	"github.com/unifinder/uni-finder/internal/http/handlers/university/update"
	"github.com/unifinder/uni-finder/internal/http/middlewarectx"
	authservice "github.com/unifinder/uni-finder/internal/services/auth"
	dashboardservice "github.com/unifinder/uni-finder/internal/services/dashboard"
	paymentservice "github.com/unifinder/uni-finder/internal/services/payment"
	statsservice "github.com/unifinder/uni-finder/internal/services/stats"
	universityservice "github.com/unifinder/uni-finder/internal/services/university"
)

// Services объединяет сервисы, необходимые для регистрации маршрутов.
type Services struct {
	Auth          *authservice.AuthService
	University    *universityservice.Service
	Dashboard     *dashboardservice.Service
	Payment       *paymentservice.Service
	Stats         *statsservice.Service
	WebhookSecret string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)

		// Webhook endpoint (без аутентификации, защищён HMAC-подписью)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment, s.WebhookSecret).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/dashboard", dashboardget.New(logger, s.Dashboard).ServeHTTP)
			r.Post("/dashboard/lists", dashboardaddentry.New(logger, s.Dashboard).ServeHTTP)
			r.Patch("/dashboard/profile", updateprofile.New(logger, s.Dashboard).ServeHTTP)
			r.Post("/payments/initialize", paymentinit.New(logger, s.Payment).ServeHTTP)

			// Каталог доступен только с действующей подпиской
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionGateMiddleware(logger, s.Dashboard))
				r.Get("/universities", list.New(logger, s.University).ServeHTTP)
				r.Get("/universities/{id}", read.New(logger, s.University).ServeHTTP)
			})

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/universities", create.New(logger, s.University).ServeHTTP)
				r.Post("/universities/bulk", bulkcreate.New(logger, s.University).ServeHTTP)
				r.Put("/universities/{id}", update.New(logger, s.University).ServeHTTP)
				r.Delete("/universities/{id}", remove.New(logger, s.University).ServeHTTP)
				r.Get("/admin/stats", stats.New(logger, s.Stats).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
