package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifinder/uni-finder/internal/models"
	"github.com/unifinder/uni-finder/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetOrCreateDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}
func (m *RepoMock) GetDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}
func (m *RepoMock) AddUniversityToList(ctx context.Context, userID int64, list models.ListName, universityID int64) error {
	args := m.Called(ctx, userID, list, universityID)
	return args.Error(0)
}
func (m *RepoMock) UpdateDashboardPhone(ctx context.Context, userID int64, phone string) error {
	args := m.Called(ctx, userID, phone)
	return args.Error(0)
}

type UniversityRepoMock struct{ mock.Mock }

func (m *UniversityRepoMock) ReadUniversity(ctx context.Context, id int64) (*models.University, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.University), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) UpdateUserName(ctx context.Context, userID int64, firstName, lastName *string) error {
	args := m.Called(ctx, userID, firstName, lastName)
	return args.Error(0)
}

func newService(repo *RepoMock, unis *UniversityRepoMock, users *UserRepoMock) *Service {
	return New(repo, unis, users, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAddToList(t *testing.T) {
	repo := new(RepoMock)
	unis := new(UniversityRepoMock)
	dash := &models.Dashboard{UserID: 5, SubscriptionStatus: models.SubscriptionNone}

	unis.On("ReadUniversity", mock.Anything, int64(10)).Return(&models.University{ID: 10}, nil)
	repo.On("GetOrCreateDashboard", mock.Anything, int64(5)).Return(dash, nil)
	repo.On("AddUniversityToList", mock.Anything, int64(5), models.ListFavorites, int64(10)).Return(nil)
	repo.On("GetDashboard", mock.Anything, int64(5)).Return(dash, nil)

	svc := newService(repo, unis, new(UserRepoMock))
	got, err := svc.AddToList(context.Background(), 5, models.DummyListEntry{
		UniversityID: 10,
		ListName:     "favorites",
	})
	require.NoError(t, err)
	assert.Equal(t, dash, got)
	repo.AssertExpectations(t)
	unis.AssertExpectations(t)
}

func TestAddToList_UnknownUniversity(t *testing.T) {
	repo := new(RepoMock)
	unis := new(UniversityRepoMock)
	unis.On("ReadUniversity", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	svc := newService(repo, unis, new(UserRepoMock))
	_, err := svc.AddToList(context.Background(), 5, models.DummyListEntry{
		UniversityID: 99,
		ListName:     "favorites",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "AddUniversityToList", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToList_InvalidListName(t *testing.T) {
	repo := new(RepoMock)
	unis := new(UniversityRepoMock)
	unis.On("ReadUniversity", mock.Anything, int64(10)).Return(&models.University{ID: 10}, nil)

	svc := newService(repo, unis, new(UserRepoMock))
	_, err := svc.AddToList(context.Background(), 5, models.DummyListEntry{
		UniversityID: 10,
		ListName:     "wishlist",
	})
	assert.ErrorIs(t, err, ErrInvalidListName)
	repo.AssertNotCalled(t, "AddUniversityToList", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(RepoMock)
	users := new(UserRepoMock)
	first := "Abel"
	phone := "+251911000000"
	dash := &models.Dashboard{UserID: 5, PhoneNumber: phone}

	repo.On("GetOrCreateDashboard", mock.Anything, int64(5)).Return(dash, nil)
	users.On("UpdateUserName", mock.Anything, int64(5), &first, (*string)(nil)).Return(nil)
	repo.On("UpdateDashboardPhone", mock.Anything, int64(5), phone).Return(nil)
	repo.On("GetDashboard", mock.Anything, int64(5)).Return(dash, nil)

	svc := newService(repo, new(UniversityRepoMock), users)
	got, err := svc.UpdateProfile(context.Background(), 5, models.DummyProfileUpdate{
		FirstName:   &first,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, got.PhoneNumber)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestGetSubscription_MissingDashboard(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetDashboard", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	svc := newService(repo, new(UniversityRepoMock), new(UserRepoMock))
	_, _, err := svc.GetSubscription(context.Background(), 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "GetOrCreateDashboard", mock.Anything, mock.Anything)
}

func TestGetSubscription(t *testing.T) {
	end := time.Now().AddDate(0, 0, 10)
	repo := new(RepoMock)
	repo.On("GetDashboard", mock.Anything, int64(5)).Return(&models.Dashboard{
		UserID:              5,
		SubscriptionStatus:  models.SubscriptionActive,
		SubscriptionEndDate: &end,
	}, nil)

	svc := newService(repo, new(UniversityRepoMock), new(UserRepoMock))
	status, endDate, err := svc.GetSubscription(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, status)
	require.NotNil(t, endDate)
	assert.True(t, endDate.Equal(end))
}
