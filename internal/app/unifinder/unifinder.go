package unifinder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/unifinder/uni-finder/internal/config"
	libjwt "github.com/unifinder/uni-finder/internal/lib/jwt"
	"github.com/unifinder/uni-finder/internal/migrations"
	"github.com/unifinder/uni-finder/internal/paymentprovider"
	authservice "github.com/unifinder/uni-finder/internal/services/auth"
	dashboardservice "github.com/unifinder/uni-finder/internal/services/dashboard"
	paymentservice "github.com/unifinder/uni-finder/internal/services/payment"
	statsservice "github.com/unifinder/uni-finder/internal/services/stats"
	universityservice "github.com/unifinder/uni-finder/internal/services/university"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

// App хранит собранное приложение: HTTP-сервер и соединение с базой.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает App: подключается к базе, прогоняет миграции, собирает
// сервисы и регистрирует маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	gateway := paymentprovider.NewClient(cfg.Chapa.SecretKey, cfg.Chapa.APIURL)

	authService := authservice.NewAuthService(db, jwtMaker)
	universityService := universityservice.New(db, logger)
	dashboardService := dashboardservice.New(db, db, db, logger)
	paymentService := paymentservice.New(gateway, db, db, paymentservice.Config{
		SecretKey:   cfg.Chapa.SecretKey,
		Amount:      cfg.Chapa.Amount,
		Currency:    cfg.Chapa.Currency,
		CallbackURL: cfg.Chapa.CallbackURL,
		ReturnURL:   cfg.Chapa.ReturnURL,
		Title:       cfg.Chapa.Title,
		Description: cfg.Chapa.Description,
	}, logger)
	statsService := statsservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:          authService,
		University:    universityService,
		Dashboard:     dashboardService,
		Payment:       paymentService,
		Stats:         statsService,
		WebhookSecret: cfg.Chapa.WebhookSecret,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки
// сервера. При отмене контекста сервер завершается корректно.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
