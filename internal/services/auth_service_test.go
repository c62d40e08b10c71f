package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/senyabanana/auction-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.Admin)}
}

func (f *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (*models.Admin, error) {
	admin, ok := f.admins[username]
	if !ok {
		return nil, models.NewNotFoundError("admin not found")
	}
	copied := *admin
	return &copied, nil
}

func (f *fakeAdminRepo) UpsertAdmin(_ context.Context, username, passwordHash string) (*models.Admin, error) {
	admin := &models.Admin{ID: username, Username: username, PasswordHash: passwordHash}
	f.admins[username] = admin
	copied := *admin
	return &copied, nil
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	const secret = "test-secret"

	newFixture := func(t *testing.T) *AuthService {
		t.Helper()
		repo := newFakeAdminRepo()
		hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = repo.UpsertAdmin(ctx, "organizer", string(hash))
		require.NoError(t, err)
		return NewAuthService(repo, secret)
	}

	t.Run("issues a signed token", func(t *testing.T) {
		service := newFixture(t)
		issued := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return issued }

		response, err := service.Login(ctx, models.LoginRequest{Username: "organizer", Password: "correct horse"})
		require.NoError(t, err)
		require.NotEmpty(t, response.Token)

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(response.Token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithTimeFunc(func() time.Time { return issued.Add(time.Hour) }))
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "organizer", claims.Subject)
		assert.Equal(t, issued.Add(tokenTTL), claims.ExpiresAt.Time)
	})

	t.Run("wrong password", func(t *testing.T) {
		service := newFixture(t)

		_, err := service.Login(ctx, models.LoginRequest{Username: "organizer", Password: "wrong"})
		require.Error(t, err)
		errorResponse, ok := err.(*models.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, errorResponse.StatusCode)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		service := newFixture(t)

		_, err := service.Login(ctx, models.LoginRequest{Username: "ghost", Password: "whatever"})
		require.Error(t, err)
		errorResponse, ok := err.(*models.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, errorResponse.StatusCode)
	})

	t.Run("missing credentials", func(t *testing.T) {
		service := newFixture(t)

		_, err := service.Login(ctx, models.LoginRequest{Username: "organizer"})
		requireErrorKind(t, err, models.ValidationError)
	})
}
