package services

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      repository.AdminRepository
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo repository.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{Repo: repo, jwtSecret: []byte(jwtSecret), now: time.Now}
}

// Login проверяет учетные данные организатора и выдает JWT.
func (s *AuthService) Login(ctx context.Context, loginReq models.LoginRequest) (*models.LoginResponse, error) {
	if loginReq.Username == "" || loginReq.Password == "" {
		return nil, models.NewValidationError("missing required fields: username or password")
	}

	admin, err := s.Repo.GetAdminByUsername(ctx, loginReq.Username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok && errorResponse.Kind == models.NotFoundError {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, models.ValidationError, "invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(loginReq.Password)); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, models.ValidationError, "invalid username or password")
	}

	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   admin.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: signed}, nil
}
