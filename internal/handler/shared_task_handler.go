package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"planshare/internal/auth"
	"planshare/internal/domain"
	"planshare/internal/service"

	"github.com/go-chi/chi/v5"
)

// SharedTaskHandler — единственный путь, которым получатель share меняет
// чужие задачи. Уровень доступа проверяется на каждом вызове.
type SharedTaskHandler struct {
	gateway *service.TaskGatewayService
}

func NewSharedTaskHandler(gateway *service.TaskGatewayService) *SharedTaskHandler {
	return &SharedTaskHandler{gateway: gateway}
}

func (h *SharedTaskHandler) UpdateSharedTask(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID := chi.URLParam(r, "id")
	if taskID == "" {
		http.Error(w, "Task ID is required", http.StatusBadRequest)
		return
	}

	var patch domain.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Printf("[UpdateSharedTask] Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.gateway.UpdateSharedTask(r.Context(), userID, taskID, &patch)
	if err != nil {
		log.Printf("[UpdateSharedTask] Denied or failed for task %s, caller %s: %v", taskID, userID, err)
		writeDomainError(w, err)
		return
	}

	log.Printf("[UpdateSharedTask] Task %s updated by %s", taskID, userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *SharedTaskHandler) DeleteSharedTask(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID := chi.URLParam(r, "id")
	if taskID == "" {
		http.Error(w, "Task ID is required", http.StatusBadRequest)
		return
	}

	if err := h.gateway.DeleteSharedTask(r.Context(), userID, taskID); err != nil {
		log.Printf("[DeleteSharedTask] Denied or failed for task %s, caller %s: %v", taskID, userID, err)
		writeDomainError(w, err)
		return
	}

	log.Printf("[DeleteSharedTask] Task %s deleted by %s", taskID, userID)
	w.WriteHeader(http.StatusNoContent)
}
