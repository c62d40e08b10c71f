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

// PlayerHandler - структура для обработки HTTP-запросов по игрокам.
type PlayerHandler struct {
	Service *services.PlayerService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewPlayerHandler создает новый экземпляр PlayerHandler.
func NewPlayerHandler(service *services.PlayerService, logger *slog.Logger, timeout time.Duration) *PlayerHandler {
	return &PlayerHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetPlayers обрабатывает запросы для получения списка игроков.
func (h *PlayerHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	auctionID := r.URL.Query().Get("auction")
	statuses := r.URL.Query()["status"]

	players, err := h.Service.FetchPlayers(ctx, limitStr, offsetStr, auctionID, statuses)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to fetch players", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch players", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, players)
}

// RegisterPlayer обрабатывает заявки саморегистрации игроков.
func (h *PlayerHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var playerReq models.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&playerReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	player, err := h.Service.RegisterPlayer(ctx, playerReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to register player", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to register player", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("player registered", slog.String("player_id", player.ID), slog.String("name", player.Name))
	utils.SendJSONResponse(w, http.StatusCreated, player)
}

// GetPlayer обрабатывает запросы для получения игрока.
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	playerID := r.PathValue("playerId")

	player, err := h.Service.GetPlayer(ctx, playerID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch player", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, player)
}

// ApprovePlayer обрабатывает запросы для одобрения игрока.
func (h *PlayerHandler) ApprovePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	playerID := r.PathValue("playerId")
	auctionID := r.URL.Query().Get("auctionId")

	player, err := h.Service.ApprovePlayer(ctx, playerID, auctionID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to approve player", slog.String("player_id", playerID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to approve player", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("player approved", slog.String("player_id", playerID), slog.String("auction_id", auctionID))
	utils.SendJSONResponse(w, http.StatusOK, player)
}

// SetPlayerCategory обрабатывает запросы для назначения категории игроку.
func (h *PlayerHandler) SetPlayerCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	playerID := r.PathValue("playerId")

	var body struct {
		Category  string `json:"category"`
		AuctionID string `json:"auctionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	player, err := h.Service.SetPlayerCategory(ctx, playerID, body.Category, body.AuctionID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to set player category", slog.String("player_id", playerID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to set player category", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, player)
}
