package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifinder/uni-finder/internal/lib/jwt"
	"github.com/unifinder/uni-finder/internal/lib/password"
	"github.com/unifinder/uni-finder/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestRegister(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "alice" && u.Role == models.RoleUser &&
			u.PasswordHash != "" && u.PasswordHash != "qwerty123"
	})).Return(int64(1), nil)

	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))
	id, err := svc.Register(context.Background(), "alice", "alice@example.com", "qwerty123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	repo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("qwerty123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		rawPass   string
		setupMock func(*RepoMock)
		wantErr   error
	}{
		{
			name:    "успешный вход",
			rawPass: "qwerty123",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
					ID: 7, Username: "alice", PasswordHash: hash, Role: models.RoleUser,
				}, nil)
				m.On("UpdateLastLogin", mock.Anything, int64(7)).Return(nil)
			},
		},
		{
			name:    "неверный пароль",
			rawPass: "wrong",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
					ID: 7, Username: "alice", PasswordHash: hash, Role: models.RoleUser,
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "пользователь не найден",
			rawPass: "qwerty123",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(nil, errors.New("no rows"))
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMock(repo)

			maker := jwt.NewJWTMaker("secret", time.Hour)
			svc := NewAuthService(repo, maker)
			token, role, err := svc.Login(context.Background(), "alice", tt.rawPass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RoleUser, role)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, int64(7), claims.UserID)
			repo.AssertExpectations(t)
		})
	}
}
