package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"planshare/internal/auth"
	"planshare/internal/service"
	"strconv"
	"time"
)

const defaultHorizonDays = 7

type AgendaHandler struct {
	agendaService *service.AgendaService
}

func NewAgendaHandler(agendaService *service.AgendaService) *AgendaHandler {
	return &AgendaHandler{agendaService: agendaService}
}

func (h *AgendaHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days := defaultHorizonDays
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid horizon_days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	items, err := h.agendaService.BuildUpcoming(r.Context(), userID, time.Now(), time.Duration(days)*24*time.Hour)
	if err != nil {
		log.Printf("[GetUpcoming] Failed for principal %s: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *AgendaHandler) ListSharedEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.agendaService.ListSharedEvents(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("[ListSharedEvents] Failed for recipient %s: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
