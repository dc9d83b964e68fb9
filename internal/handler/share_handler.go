package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"planshare/internal/auth"
	"planshare/internal/domain"
	"planshare/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ShareHandler struct {
	shareService     *service.ShareService
	lifecycleService *service.ShareLifecycleService
}

func NewShareHandler(shareService *service.ShareService, lifecycleService *service.ShareLifecycleService) *ShareHandler {
	return &ShareHandler{
		shareService:     shareService,
		lifecycleService: lifecycleService,
	}
}

type createShareRequest struct {
	Recipient       string            `json:"recipient"`
	Permission      domain.Permission `json:"permission"`
	ScopeType       domain.ScopeType  `json:"scope_type"`
	SelectedTaskIDs []string          `json:"selected_task_ids,omitempty"`
	Message         string            `json:"message,omitempty"`
}

type updateShareRequest struct {
	Permission      *domain.Permission `json:"permission,omitempty"`
	ScopeType       *domain.ScopeType  `json:"scope_type,omitempty"`
	SelectedTaskIDs []string           `json:"selected_task_ids,omitempty"`
	Message         *string            `json:"message,omitempty"`
}

func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		log.Printf("[CreateShare] Authentication failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[CreateShare] Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !req.Permission.Valid() || !req.ScopeType.Valid() {
		http.Error(w, "Invalid permission or scope type", http.StatusBadRequest)
		return
	}

	share, err := h.shareService.CreateShare(r.Context(), service.CreateShareInput{
		OwnerID:             userID,
		RecipientIdentifier: req.Recipient,
		Permission:          req.Permission,
		ScopeType:           req.ScopeType,
		SelectedTaskIDs:     req.SelectedTaskIDs,
		Message:             req.Message,
	})
	if err != nil {
		log.Printf("[CreateShare] Failed to create share for owner %s: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	log.Printf("[CreateShare] Owner %s created share %s", userID, share.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(share)
}

func (h *ShareHandler) ListOwnerShares(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shares, err := h.shareService.ListForOwner(r.Context(), userID)
	if err != nil {
		log.Printf("[ListOwnerShares] Failed for owner %s: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shares)
}

func (h *ShareHandler) ListIncomingShares(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shares, err := h.shareService.ListForRecipient(r.Context(), userID)
	if err != nil {
		log.Printf("[ListIncomingShares] Failed for recipient %s: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shares)
}

func (h *ShareHandler) UpdateShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shareID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid share ID", http.StatusBadRequest)
		return
	}

	var req updateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	share, err := h.shareService.UpdateShare(r.Context(), shareID, userID, service.UpdateShareInput{
		Permission:      req.Permission,
		ScopeType:       req.ScopeType,
		SelectedTaskIDs: req.SelectedTaskIDs,
		Message:         req.Message,
	})
	if err != nil {
		log.Printf("[UpdateShare] Failed for share %s, owner %s: %v", shareID, userID, err)
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(share)
}

func (h *ShareHandler) AcceptShare(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "AcceptShare", h.lifecycleService.Accept)
}

func (h *ShareHandler) DeclineShare(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "DeclineShare", h.lifecycleService.Decline)
}

func (h *ShareHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "RevokeShare", h.shareService.RevokeShare)
}

func (h *ShareHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	method string,
	fn func(ctx context.Context, shareID uuid.UUID, callerID string) error,
) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shareID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid share ID", http.StatusBadRequest)
		return
	}

	if err := fn(r.Context(), shareID, userID); err != nil {
		log.Printf("[%s] Failed for share %s, caller %s: %v", method, shareID, userID, err)
		writeDomainError(w, err)
		return
	}

	log.Printf("[%s] Share %s, caller %s", method, shareID, userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
