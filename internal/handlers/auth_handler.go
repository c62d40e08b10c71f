package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/services"
	"github.com/senyabanana/auction-service/internal/utils"
)

// AuthHandler - структура для обработки запросов входа организатора.
type AuthHandler struct {
	Service *services.AuthService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(service *services.AuthService, logger *slog.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Login обрабатывает запросы входа.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	response, err := h.Service.Login(ctx, loginReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("login rejected", slog.String("username", loginReq.Username))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to login", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("admin logged in", slog.String("username", loginReq.Username))
	utils.SendJSONResponse(w, http.StatusOK, response)
}
