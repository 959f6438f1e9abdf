package api

import (
	"net/http"
	"time"

	"garagem/internal/entities"
	apperrors "garagem/internal/errors"
	"garagem/internal/service"
)

type RevenueHandler struct {
	Service *service.ParkingService
}

func NewRevenueHandler(svc *service.ParkingService) *RevenueHandler {
	return &RevenueHandler{Service: svc}
}

// GetRevenue returns the summed charges for a sector on a date
// (?sector=A&date=2025-01-20).
func (h *RevenueHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	date := r.URL.Query().Get("date")
	if sector == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "sector and date are required"))
		return
	}

	amount, err := h.Service.Revenue(sector, date)
	if err != nil {
		httpErr := apperrors.FromDomain(err)
		code := "INTERNAL_ERROR"
		if httpErr.Code == http.StatusBadRequest {
			code = "VALIDATION_ERROR"
		}
		writeJSON(w, httpErr.Code, NewErrorResponse(code, httpErr.Message))
		return
	}

	writeJSON(w, http.StatusOK, entities.RevenueResponse{
		Amount:    amount,
		Currency:  "BRL",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
