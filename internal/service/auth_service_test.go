package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/pkg/config"
	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
)

type stubUserRepo struct {
	user             *models.User
	lastLoginUpdated bool
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if r.user == nil || r.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return r.user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return r.user, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error {
	r.lastLoginUpdated = true
	return nil
}

func newAuthFixture(t *testing.T, password string, active bool) (*AuthService, *stubUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{user: &models.User{
		ID:           "user-1",
		Email:        "sam@kestrel.test",
		PasswordHash: string(hash),
		FullName:     "Sam Lee",
		Role:         "student",
		Active:       active,
	}}
	svc := NewAuthService(repo, nil, nil, config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "booking-api-test",
	})
	return svc, repo
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, repo := newAuthFixture(t, "s3cret", true)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@kestrel.test", Password: "s3cret"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sam@kestrel.test", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, "s3cret", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@kestrel.test", Password: "wrong"})

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, "s3cret", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@kestrel.test", Password: "s3cret"})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, _ := newAuthFixture(t, "s3cret", false)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@kestrel.test", Password: "s3cret"})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	svc, _ := newAuthFixture(t, "s3cret", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: ""})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t, "s3cret", true)

	_, err := svc.ValidateToken("not.a.token")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
