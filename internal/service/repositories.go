package service

import (
	"context"
	"planshare/internal/domain"

	"github.com/google/uuid"
)

// Узкие интерфейсы хранилищ. Сервисы получают их через конструкторы, тесты
// подставляют in-memory реализации без базы данных.

type ShareRepository interface {
	Create(ctx context.Context, share *domain.Share) error
	GetByID(ctx context.Context, shareID uuid.UUID) (*domain.Share, error)
	ListByOwner(ctx context.Context, ownerID string, states []domain.LifecycleState) ([]domain.Share, error)
	ListByRecipient(ctx context.Context, recipientID string, states []domain.LifecycleState) ([]domain.Share, error)
	ListBetween(ctx context.Context, ownerID, recipientID string, states []domain.LifecycleState) ([]domain.Share, error)
	Update(ctx context.Context, share *domain.Share) error
	UpdateState(ctx context.Context, shareID uuid.UUID, from []domain.LifecycleState, to domain.LifecycleState) error
}

// TaskRepository — контракт внешнего Task Store.
type TaskRepository interface {
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	UpdateFields(ctx context.Context, taskID string, patch *domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

type PrincipalRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Principal, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Principal, error)
}
