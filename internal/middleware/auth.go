package middleware

import (
	"net/http"
	"strings"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth проверяет JWT токен администратора на защищенных маршрутах.
type AdminAuth struct {
	secret []byte
}

// NewAdminAuth создает новый экземпляр AdminAuth.
func NewAdminAuth(jwtSecret string) *AdminAuth {
	return &AdminAuth{secret: []byte(jwtSecret)}
}

// Require оборачивает обработчик и пропускает запрос только с валидным токеном.
func (a *AdminAuth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, models.ValidationError, "authorization header is missing")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			utils.SendErrorResponse(w, http.StatusUnauthorized, models.ValidationError, "authorization header must use Bearer scheme")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			utils.SendErrorResponse(w, http.StatusUnauthorized, models.ValidationError, "invalid or expired token")
			return
		}

		next(w, r)
	}
}
