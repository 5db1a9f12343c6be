// Package auth содержит бизнес-логику регистрации, входа и проверки JWT.
package auth

import (
	"context"
	"errors"

	"github.com/unifinder/uni-finder/internal/lib/jwt"
	"github.com/unifinder/uni-finder/internal/lib/password"
	"github.com/unifinder/uni-finder/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя вместе с его кабинетом
	// и возвращает ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью "user". Кабинет создаётся хранилищем в той же транзакции,
// что и учётная запись.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (int64, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.ID)
	if err != nil {
		return "", "", err
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает его claims, если токен корректен.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
