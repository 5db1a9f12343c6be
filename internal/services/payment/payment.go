// Package payment содержит бизнес-логику платежей: инициализацию
// hosted-платежа у шлюза и подтверждение транзакции, пришедшей webhook'ом,
// с продлением подписки владельца.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/unifinder/uni-finder/internal/lib/txref"
	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/paymentprovider"
)

// Срок, на который одна оплата продлевает подписку.
const renewalDays = 30

var (
	// ErrMissingSecret — секретный ключ шлюза не задан в окружении.
	// Это ошибка конфигурации сервера, а не клиента.
	ErrMissingSecret = errors.New("payment secret key is not configured")
	// ErrGatewayRejected — шлюз отклонил операцию или не подтвердил
	// успешность транзакции.
	ErrGatewayRejected = errors.New("transaction not successful")
	// ErrBadReference — ссылка транзакции не разбирается или указывает
	// на неизвестного пользователя.
	ErrBadReference = errors.New("invalid transaction reference")
)

// Config — параметры платежа за продление подписки. Сумма и валюта
// фиксированные: одна оплата соответствует одному месяцу.
type Config struct {
	SecretKey   string // Секретный ключ API шлюза (из окружения)
	Amount      string // Сумма платежа, например "100"
	Currency    string // Валюта, например "ETB"
	CallbackURL string // Webhook этого сервиса, который вызовет шлюз
	ReturnURL   string // Адрес клиентского приложения после оплаты
	Title       string // Заголовок платёжной страницы
	Description string // Описание платежа
}

// Gateway описывает используемые операции платёжного шлюза.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req paymentprovider.InitializeRequest) (*paymentprovider.InitializeResponse, error)
	VerifyTransaction(ctx context.Context, txRef string) (*paymentprovider.VerifyResponse, error)
}

// UserRepository нужен для данных плательщика и поиска владельца транзакции.
type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// DashboardRepository применяет результат оплаты к кабинету владельца.
type DashboardRepository interface {
	GetOrCreateDashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	ExtendSubscription(ctx context.Context, userID int64, endDate time.Time) error
}

// Service реализует бизнес-логику платежей.
type Service struct {
	gateway    Gateway
	users      UserRepository
	dashboards DashboardRepository
	cfg        Config
	log        *slog.Logger
}

// New создает новый платёжный Service.
func New(gateway Gateway, users UserRepository, dashboards DashboardRepository, cfg Config, log *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		users:      users,
		dashboards: dashboards,
		cfg:        cfg,
		log:        log,
	}
}

// InitializePayment создаёт у шлюза hosted-платёж за продление подписки
// пользователя и возвращает адрес платёжной страницы. Ссылка транзакции
// уникальна для каждой попытки и кодирует id пользователя вторым
// сегментом, поэтому webhook сможет найти владельца без отдельной таблицы.
func (s *Service) InitializePayment(ctx context.Context, userID int64) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", ErrMissingSecret
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	ref := txref.New(user.ID)
	req := paymentprovider.InitializeRequest{
		Amount:                   s.cfg.Amount,
		Currency:                 s.cfg.Currency,
		Email:                    user.Email,
		FirstName:                user.FirstName,
		LastName:                 user.LastName,
		TxRef:                    ref,
		CallbackURL:              s.cfg.CallbackURL,
		ReturnURL:                s.cfg.ReturnURL,
		CustomizationTitle:       s.cfg.Title,
		CustomizationDescription: s.cfg.Description,
	}

	resp, err := s.gateway.InitializeTransaction(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.Status != "success" {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, resp.Message)
	}

	s.log.Info("initialized payment",
		slog.Int64("user_id", user.ID),
		slog.String("tx_ref", ref))
	return resp.Data.CheckoutURL, nil
}

// ConfirmTransaction независимо перепроверяет транзакцию у шлюза и,
// убедившись в её успешности, продлевает подписку владельца на 30 дней:
// от текущей даты окончания, если подписка ещё не истекла, иначе от
// сегодняшнего дня. До успешной проверки состояние не меняется.
// Проверка по ссылке намеренно не запоминается: повторная доставка
// независимо валидного уведомления продлит подписку ещё раз.
func (s *Service) ConfirmTransaction(ctx context.Context, txRef string) error {
	if s.cfg.SecretKey == "" {
		return ErrMissingSecret
	}

	resp, err := s.gateway.VerifyTransaction(ctx, txRef)
	if err != nil {
		return err
	}
	if resp.Data.Status != "success" {
		return fmt.Errorf("%w: tx_ref %s", ErrGatewayRejected, txRef)
	}

	userID, err := txref.UserID(txRef)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadReference, txRef)
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadReference, txRef)
	}

	dashboard, err := s.dashboards.GetOrCreateDashboard(ctx, user.ID)
	if err != nil {
		return err
	}

	today := startOfToday()
	var newEnd time.Time
	if dashboard.SubscriptionEndDate != nil && dashboard.SubscriptionEndDate.After(today) {
		newEnd = dashboard.SubscriptionEndDate.AddDate(0, 0, renewalDays)
	} else {
		newEnd = today.AddDate(0, 0, renewalDays)
	}

	if err := s.dashboards.ExtendSubscription(ctx, user.ID, newEnd); err != nil {
		return err
	}

	s.log.Info("subscription extended",
		slog.Int64("user_id", user.ID),
		slog.String("tx_ref", txRef),
		slog.Time("new_end_date", newEnd))
	return nil
}

// startOfToday возвращает сегодняшнюю дату с точностью до дня в UTC —
// той же гранулярностью, с которой дата окончания хранится в базе.
func startOfToday() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
