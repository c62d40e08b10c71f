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

// LotHandler - структура для обработки HTTP-запросов торгов по лоту.
type LotHandler struct {
	Service *services.LotService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewLotHandler создает новый экземпляр LotHandler.
func NewLotHandler(service *services.LotService, logger *slog.Logger, timeout time.Duration) *LotHandler {
	return &LotHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// OpenLot обрабатывает запросы для открытия лота.
func (h *LotHandler) OpenLot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	playerID := r.PathValue("playerId")

	auction, err := h.Service.OpenLot(ctx, auctionID, playerID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to open lot",
				slog.String("auction_id", auctionID), slog.String("player_id", playerID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to open lot", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("lot opened", slog.String("auction_id", auctionID), slog.String("player_id", playerID))
	utils.SendJSONResponse(w, http.StatusOK, auction)
}

// PlaceBid обрабатывает запросы для новой ставки.
func (h *LotHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	playerID := r.PathValue("playerId")

	var bidReq models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	bid, err := h.Service.PlaceBid(ctx, auctionID, playerID, bidReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("bid rejected",
				slog.String("auction_id", auctionID),
				slog.String("player_id", playerID),
				slog.String("team_id", bidReq.TeamID),
				slog.Int64("amount", bidReq.Amount),
				slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to place bid", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("bid placed",
		slog.String("bid_id", bid.ID),
		slog.String("player_id", playerID),
		slog.String("team_id", bid.TeamID),
		slog.Int64("amount", bid.Amount))
	utils.SendJSONResponse(w, http.StatusCreated, bid)
}

// Sell обрабатывает запросы для закрытия лота продажей.
func (h *LotHandler) Sell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	playerID := r.PathValue("playerId")
	teamID := r.URL.Query().Get("teamId")

	player, err := h.Service.Sell(ctx, auctionID, playerID, teamID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to sell lot",
				slog.String("auction_id", auctionID),
				slog.String("player_id", playerID),
				slog.String("team_id", teamID),
				slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to sell lot", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("lot sold",
		slog.String("player_id", playerID),
		slog.String("team_id", teamID),
		slog.Int64("amount", *player.CurrentPrice))
	utils.SendJSONResponse(w, http.StatusOK, player)
}

// MarkUnsold обрабатывает запросы для закрытия лота без продажи.
func (h *LotHandler) MarkUnsold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	playerID := r.PathValue("playerId")

	player, err := h.Service.MarkUnsold(ctx, auctionID, playerID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to mark lot unsold",
				slog.String("auction_id", auctionID), slog.String("player_id", playerID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to mark lot unsold", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("lot closed unsold", slog.String("player_id", playerID))
	utils.SendJSONResponse(w, http.StatusOK, player)
}

// ResetPlayer обрабатывает административный сброс игрока.
func (h *LotHandler) ResetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	playerID := r.PathValue("playerId")

	player, err := h.Service.ResetPlayer(ctx, playerID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to reset player", slog.String("player_id", playerID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to reset player", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("player reset", slog.String("player_id", playerID))
	utils.SendJSONResponse(w, http.StatusOK, player)
}

// GetPlayerBids обрабатывает запросы для получения журнала ставок игрока.
func (h *LotHandler) GetPlayerBids(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	playerID := r.PathValue("playerId")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	bids, err := h.Service.FetchPlayerBids(ctx, playerID, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch bids", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, bids)
}

// GetCurrentHighest обрабатывает запросы для получения текущей высшей ставки.
func (h *LotHandler) GetCurrentHighest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	playerID := r.PathValue("playerId")

	bid, err := h.Service.GetCurrentHighest(ctx, auctionID, playerID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch highest bid", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, bid)
}
