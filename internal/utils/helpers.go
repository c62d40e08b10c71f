package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/senyabanana/auction-service/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON.
func SendErrorResponse(w http.ResponseWriter, statusCode int, kind models.ErrorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		slog.Error("failed to encode error response", slog.Any("err", err))
	}
}

// SendJSONResponse отправляет успешный ответ в формате JSON.
func SendJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.Any("err", err))
	}
}

// ParseLimitOffset обрабатывает limit и offset.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 100 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:100]")
		}
	} else {
		limit = 20
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ParseAuctionDate разбирает дату аукциона из запроса.
// Принимает дату как "2006-01-02" или полный RFC3339.
func ParseAuctionDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date.UTC(), nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD or RFC3339")
	}
	return date.UTC(), nil
}

// AuctionDatePassed сообщает, прошла ли дата аукциона.
// Гранулярность - день: в сам день аукциона изменения еще разрешены.
func AuctionDatePassed(date, now time.Time) bool {
	y, m, d := now.UTC().Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ay, am, ad := date.UTC().Date()
	auctionDay := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return auctionDay.Before(startOfToday)
}

// ContainsAuctionStatus - функция для проверки перехода у аукционов.
func ContainsAuctionStatus(validTransitions []models.AuctionStatus, newStatus models.AuctionStatus) bool {
	for _, validStatus := range validTransitions {
		if validStatus == newStatus {
			return true
		}
	}
	return false
}
