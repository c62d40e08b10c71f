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

// TeamHandler - структура для обработки HTTP-запросов по командам.
type TeamHandler struct {
	Service *services.TeamService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewTeamHandler создает новый экземпляр TeamHandler.
func NewTeamHandler(service *services.TeamService, logger *slog.Logger, timeout time.Duration) *TeamHandler {
	return &TeamHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetTeams обрабатывает запросы для получения списка команд.
func (h *TeamHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	auctionID := r.URL.Query().Get("auction")

	teams, err := h.Service.FetchTeams(ctx, limitStr, offsetStr, auctionID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to fetch teams", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch teams", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, teams)
}

// CreateTeam обрабатывает запросы для создания команды.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var teamReq models.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&teamReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.ValidationError, "invalid request body")
		return
	}

	team, err := h.Service.CreateTeam(ctx, teamReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn("failed to create team", slog.Any("err", err))
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to create team", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	h.Logger.Info("team created", slog.String("team_id", team.ID), slog.String("auction_id", team.AuctionID))
	utils.SendJSONResponse(w, http.StatusCreated, team)
}

// GetTeam обрабатывает запросы для получения команды.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	teamID := r.PathValue("teamId")

	team, err := h.Service.GetTeam(ctx, teamID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Kind, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch team", slog.Any("err", err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, models.StorageUnavailableError, "storage unavailable, try again later")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, team)
}
