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

// AuctionHandler - структура для обработки HTTP-запросов по аукционам.
type AuctionHandler struct {
	Service *services.AuctionService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewAuctionHandler создает новый экземпляр AuctionHandler.
func NewAuctionHandler(service *services.AuctionService, logger *slog.Logger, timeout time.Duration) *AuctionHandler {
	return &AuctionHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetAuctions обрабатывает запросы для получения списка аукционов.
func (h *AuctionHandler) GetAuctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statuses := r.URL.Query()["status"]

	auctions, err := h.Service.FetchAuctions(ctx, limitStr, offsetStr, statuses)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to fetch auctions", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch auctions", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, auctions)
}

// CreateAuction обрабатывает запросы для создания аукциона.
func (h *AuctionHandler) CreateAuction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var auctionReq models.AuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&auctionReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	auction, err := h.Service.CreateAuction(ctx, auctionReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to create auction", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to create auction", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("auction created", slog.String("auction_id", auction.ID), slog.String("title", auction.Title))
	utils.SendJSONResponse(w, http.StatusCreated, auction)
}

// GetAuction обрабатывает запросы для получения аукциона.
func (h *AuctionHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")

	auction, err := h.Service.GetAuction(ctx, auctionID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch auction", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, auction)
}

// EditAuction обрабатывает запросы для изменения аукциона.
func (h *AuctionHandler) EditAuction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	updatedAuction, err := h.Service.EditAuction(ctx, auctionID, updateFields)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to update auction", slog.String("auction_id", auctionID), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to update auction", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedAuction)
}

// UpdateAuctionStatus обрабатывает запросы для перевода аукциона между статусами.
func (h *AuctionHandler) UpdateAuctionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")
	status := r.URL.Query().Get("status")

	auction, err := h.Service.UpdateAuctionStatus(ctx, auctionID, status)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to update auction status",
				slog.String("auction_id", auctionID), slog.String("status", status), slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to update auction status", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("auction status updated", slog.String("auction_id", auctionID), slog.String("status", status))
	utils.SendJSONResponse(w, http.StatusOK, auction)
}

// AddHighlight обрабатывает запросы для добавления хайлайта.
func (h *AuctionHandler) AddHighlight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	auctionID := r.PathValue("auctionId")

	var body struct {
		Highlight string `json:"highlight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	auction, err := h.Service.AddHighlight(ctx, auctionID, body.Highlight)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to add highlight", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, auction)
}
