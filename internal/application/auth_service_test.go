package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
	"github.com/patientpal/patientpal-server/pkg/helpers"
)

func newAuthService(members *memberRepoMock) *AuthService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(members, jwt, nil, logrus.New(), nil)
}

func TestSignup(t *testing.T) {
	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return nil, repo.ErrNotFound
		},
		CreateFn: func(ctx context.Context, m *entity.Member) error {
			m.ID = "member-1"
			return nil
		},
	}

	svc := newAuthService(members)
	m, err := svc.Signup(context.Background(), "newuser", "new@example.com", "secret123", entity.RolePatient)

	require.NoError(t, err)
	assert.Equal(t, "member-1", m.ID)
	assert.Equal(t, entity.RolePatient, m.Role)
	assert.NotEqual(t, "secret123", m.Password, "password must be stored hashed")
	assert.True(t, helpers.CompareHashAndPassword(m.Password, "secret123"))
}

func TestSignupUsernameTaken(t *testing.T) {
	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return memberFixture("member-1", entity.RolePatient), nil
		},
	}

	svc := newAuthService(members)
	_, err := svc.Signup(context.Background(), "taken", "", "secret123", entity.RoleCaregiver)

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeUsernameTaken, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)

	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return &entity.Member{ID: "member-1", Username: username, Password: hash, Role: entity.RolePatient}, nil
		},
	}

	svc := newAuthService(members)
	m, pair, err := svc.Login(context.Background(), "demoPatient", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "member-1", m.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)

	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return &entity.Member{ID: "member-1", Username: username, Password: hash}, nil
		},
	}

	svc := newAuthService(members)
	_, _, err = svc.Login(context.Background(), "demoPatient", "wrong")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeInvalidCredentials, appErr.Code)
	assert.Equal(t, 401, appErr.Status)
}

func TestLoginUnknownUsername(t *testing.T) {
	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return nil, repo.ErrNotFound
		},
	}

	svc := newAuthService(members)
	_, _, err := svc.Login(context.Background(), "ghost", "whatever")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeInvalidCredentials, appErr.Code)
}

func TestRefreshRotatesPair(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)

	member := &entity.Member{ID: "member-1", Username: "demoPatient", Password: hash, Role: entity.RolePatient}
	members := &memberRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.Member, error) {
			return member, nil
		},
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return member, nil
		},
	}

	svc := newAuthService(members)
	_, pair, err := svc.Login(context.Background(), "demoPatient", "secret123")
	require.NoError(t, err)

	m, next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "member-1", m.ID)
	assert.NotEmpty(t, next.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthService(&memberRepoMock{})

	_, _, err := svc.Refresh(context.Background(), "not-a-token")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeInvalidCredentials, appErr.Code)
}
