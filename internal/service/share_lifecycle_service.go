package service

import (
	"context"
	"planshare/internal/domain"

	"github.com/google/uuid"
)

// ShareLifecycleService отвечает за ответ получателя на приглашение.
// Отсутствующий share, завершённый share и чужой share отвечают одинаковым
// NotFound: различие раскрывало бы существование чужих записей.
type ShareLifecycleService struct {
	shareRepo ShareRepository
}

func NewShareLifecycleService(shareRepo ShareRepository) *ShareLifecycleService {
	return &ShareLifecycleService{shareRepo: shareRepo}
}

// Accept: pending → accepted, только получателем.
func (s *ShareLifecycleService) Accept(ctx context.Context, shareID uuid.UUID, recipientID string) error {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}

	if share.RecipientID != recipientID || share.State != domain.StatePending {
		return domain.ErrNotFound
	}

	return s.shareRepo.UpdateState(
		ctx,
		shareID,
		[]domain.LifecycleState{domain.StatePending},
		domain.StateAccepted,
	)
}

// Decline: pending|accepted → declined_by_recipient, терминально.
// Новое отношение возможно только через новый share.
func (s *ShareLifecycleService) Decline(ctx context.Context, shareID uuid.UUID, recipientID string) error {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}

	if share.RecipientID != recipientID || !share.State.IsActive() {
		return domain.ErrNotFound
	}

	return s.shareRepo.UpdateState(ctx, shareID, domain.ActiveStates, domain.StateDeclinedByRecipient)
}
