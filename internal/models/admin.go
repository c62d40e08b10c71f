package models

import "time"

// Admin представляет учетную запись организатора.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest представляет структуру запроса для входа организатора.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse возвращается при успешном входе.
type LoginResponse struct {
	Token string `json:"token"`
}
