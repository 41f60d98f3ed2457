package services_test

import (
	"context"
	"testing"
	"time"

	"cryptodash/src/models"
	"cryptodash/src/services"
	"cryptodash/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byUsername map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{byUsername: map[string]*models.User{}}
	for _, u := range users {
		repo.byUsername[u.Username] = u
	}
	return repo
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _, _ string, _, _ int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }

func (f *fakeUserRepo) Delete(_ context.Context, _ int64) error { return nil }

type fakeLogRepo struct {
	entries []models.OperationLog
}

func (f *fakeLogRepo) Create(_ context.Context, log *models.OperationLog) error {
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeLogRepo) List(_ context.Context, _, _ string, _, _ int) ([]models.OperationLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func activeUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Username:     username,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	logs := &fakeLogRepo{}
	service := services.NewAuthService(
		newFakeUserRepo(activeUser(t, "alice", "secret")), logs, "test-secret", time.Hour)

	response, err := service.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "alice", response.User.Username)
	require.NotEmpty(t, response.Token)

	token, err := jwtauth.VerifyToken(service.TokenAuth(), response.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, models.RoleUser, claims["role"])

	// The login lands in the audit trail.
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "login", logs.entries[0].Action)
}

func TestLoginWrongPassword(t *testing.T) {
	service := services.NewAuthService(
		newFakeUserRepo(activeUser(t, "alice", "secret")), &fakeLogRepo{}, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), &fakeLogRepo{}, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "nobody", "secret")
	assert.Error(t, err)
}

func TestLoginInactiveUserLooksLikeBadCredentials(t *testing.T) {
	user := activeUser(t, "alice", "secret")
	user.Status = models.StatusInactive
	service := services.NewAuthService(newFakeUserRepo(user), &fakeLogRepo{}, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "alice", "secret")

	require.Error(t, err)
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
	assert.Equal(t, "invalid username or password", httpErr.Message)
}
