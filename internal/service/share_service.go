package service

import (
	"context"
	"errors"
	"fmt"
	"planshare/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ShareService struct {
	shareRepo     ShareRepository
	principalRepo PrincipalRepository
}

func NewShareService(shareRepo ShareRepository, principalRepo PrincipalRepository) *ShareService {
	return &ShareService{
		shareRepo:     shareRepo,
		principalRepo: principalRepo,
	}
}

type CreateShareInput struct {
	OwnerID             string
	RecipientIdentifier string
	Permission          domain.Permission
	ScopeType           domain.ScopeType
	SelectedTaskIDs     []string
	Message             string
}

// ShareListing — share вместе с отображаемым именем второй стороны.
type ShareListing struct {
	domain.Share
	OwnerName     string `json:"owner_name,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
}

type UpdateShareInput struct {
	Permission      *domain.Permission
	ScopeType       *domain.ScopeType
	SelectedTaskIDs []string
	Message         *string
}

// CreateShare создаёт приглашение в состоянии pending. Единственность активного
// share на пару (владелец, получатель) обеспечивает частичный уникальный индекс,
// а не предварительная проверка.
func (s *ShareService) CreateShare(ctx context.Context, in CreateShareInput) (*domain.Share, error) {
	if !in.Permission.Valid() {
		return nil, fmt.Errorf("unsupported permission: %q", in.Permission)
	}
	if !in.ScopeType.Valid() {
		return nil, fmt.Errorf("unsupported scope type: %q", in.ScopeType)
	}

	recipient, err := s.principalRepo.FindByIdentifier(ctx, in.RecipientIdentifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	if recipient.ID == in.OwnerID {
		return nil, domain.ErrSelfShare
	}

	selected, err := normalizeScope(in.ScopeType, in.SelectedTaskIDs)
	if err != nil {
		return nil, err
	}

	share := &domain.Share{
		ID:              uuid.New(),
		OwnerID:         in.OwnerID,
		RecipientID:     recipient.ID,
		Permission:      in.Permission,
		ScopeType:       in.ScopeType,
		SelectedTaskIDs: selected,
		State:           domain.StatePending,
		Message:         in.Message,
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// normalizeScope: selective без задач — ошибка валидации, при full список очищается.
func normalizeScope(scope domain.ScopeType, taskIDs []string) (pq.StringArray, error) {
	if scope == domain.ScopeFull {
		return nil, nil
	}

	seen := make(map[string]bool, len(taskIDs))
	selected := make(pq.StringArray, 0, len(taskIDs))
	for _, id := range taskIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, id)
	}

	if len(selected) == 0 {
		return nil, domain.ErrInvalidScope
	}
	return selected, nil
}

// ListForOwner показывает владельцу активные share и те, что завершил
// получатель. Отозванные самим владельцем скрыты: своя отмена — это
// «забыть», а не событие, которое нужно продолжать видеть.
func (s *ShareService) ListForOwner(ctx context.Context, ownerID string) ([]ShareListing, error) {
	states := []domain.LifecycleState{
		domain.StatePending,
		domain.StateAccepted,
		domain.StateDeclinedByRecipient,
		domain.StateRevokedByRecipient,
	}

	shares, err := s.shareRepo.ListByOwner(ctx, ownerID, states)
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, shares, func(listing *ShareListing, name string) {
		listing.RecipientName = name
	}, func(share *domain.Share) string {
		return share.RecipientID
	})
}

// ListForRecipient показывает получателю только действующие share, включая
// ещё не принятые приглашения.
func (s *ShareService) ListForRecipient(ctx context.Context, recipientID string) ([]ShareListing, error) {
	shares, err := s.shareRepo.ListByRecipient(ctx, recipientID, domain.ActiveStates)
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, shares, func(listing *ShareListing, name string) {
		listing.OwnerName = name
	}, func(share *domain.Share) string {
		return share.OwnerID
	})
}

func (s *ShareService) decorate(
	ctx context.Context,
	shares []domain.Share,
	setName func(*ShareListing, string),
	counterpart func(*domain.Share) string,
) ([]ShareListing, error) {
	ids := make([]string, 0, len(shares))
	seen := make(map[string]bool, len(shares))
	for i := range shares {
		id := counterpart(&shares[i])
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	names := make(map[string]string, len(ids))
	principals, err := s.principalRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principals: %w", err)
	}
	for i := range principals {
		names[principals[i].ID] = principals[i].DisplayName()
	}

	listings := make([]ShareListing, 0, len(shares))
	for i := range shares {
		listing := ShareListing{Share: shares[i]}
		setName(&listing, names[counterpart(&shares[i])])
		listings = append(listings, listing)
	}
	return listings, nil
}

// UpdateShare меняет условия действующего share. Чужие и завершённые share
// отвечают NotFound, чтобы не раскрывать их существование.
func (s *ShareService) UpdateShare(ctx context.Context, shareID uuid.UUID, ownerID string, in UpdateShareInput) (*domain.Share, error) {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if share.OwnerID != ownerID || !share.State.IsActive() {
		return nil, domain.ErrNotFound
	}

	if in.Permission != nil {
		if !in.Permission.Valid() {
			return nil, fmt.Errorf("unsupported permission: %q", *in.Permission)
		}
		share.Permission = *in.Permission
	}
	if in.ScopeType != nil {
		if !in.ScopeType.Valid() {
			return nil, fmt.Errorf("unsupported scope type: %q", *in.ScopeType)
		}
		share.ScopeType = *in.ScopeType
	}
	if in.SelectedTaskIDs != nil {
		share.SelectedTaskIDs = in.SelectedTaskIDs
	}
	if in.Message != nil {
		share.Message = *in.Message
	}

	selected, err := normalizeScope(share.ScopeType, share.SelectedTaskIDs)
	if err != nil {
		return nil, err
	}
	share.SelectedTaskIDs = selected

	if err := s.shareRepo.Update(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// RevokeShare завершает отношение с любой стороны. Кто отозвал — фиксируется
// в состоянии: от этого зависит, увидит ли владелец запись в своих списках.
func (s *ShareService) RevokeShare(ctx context.Context, shareID uuid.UUID, callerID string) error {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}

	if !share.State.IsActive() {
		return domain.ErrNotFound
	}

	var to domain.LifecycleState
	switch callerID {
	case share.OwnerID:
		to = domain.StateRevokedByOwner
	case share.RecipientID:
		to = domain.StateRevokedByRecipient
	default:
		return domain.ErrNotFound
	}

	return s.shareRepo.UpdateState(ctx, shareID, domain.ActiveStates, to)
}
