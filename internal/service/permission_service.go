package service

import (
	"context"
	"fmt"
	"planshare/internal/domain"
)

// PermissionService вычисляет эффективный уровень доступа принципала к задаче
// из текущего состояния share. Результат нигде не кэшируется.
type PermissionService struct {
	shareRepo ShareRepository
	taskRepo  TaskRepository
}

func NewPermissionService(shareRepo ShareRepository, taskRepo TaskRepository) *PermissionService {
	return &PermissionService{
		shareRepo: shareRepo,
		taskRepo:  taskRepo,
	}
}

// EffectivePermission возвращает None|View|Edit|Full. Владелец получает Full
// напрямую, его права никогда не проходят через share.
func (s *PermissionService) EffectivePermission(ctx context.Context, principalID, taskID string) (domain.Permission, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return domain.PermissionNone, err
	}
	return s.effectiveForTask(ctx, principalID, task)
}

func (s *PermissionService) effectiveForTask(ctx context.Context, principalID string, task *domain.Task) (domain.Permission, error) {
	if task.OwnerID == principalID {
		return domain.PermissionFull, nil
	}

	accepted := []domain.LifecycleState{domain.StateAccepted}
	shares, err := s.shareRepo.ListBetween(ctx, task.OwnerID, principalID, accepted)
	if err != nil {
		return domain.PermissionNone, fmt.Errorf("failed to list accepted shares: %w", err)
	}

	// Уникальный индекс допускает максимум один accepted share на пару,
	// но при нескольких совпадениях берём наивысший уровень.
	best := domain.PermissionNone
	for i := range shares {
		if !shares[i].Covers(task.ID) {
			continue
		}
		if shares[i].Permission.Rank() > best.Rank() {
			best = shares[i].Permission
		}
	}

	return best, nil
}

// hasActiveCoverage сообщает, связывает ли вызывающего с задачей хоть один
// действующий (pending или accepted) share. От этого зависит выбор между
// Forbidden и NotFound при отказе.
func (s *PermissionService) hasActiveCoverage(ctx context.Context, principalID string, task *domain.Task) (bool, error) {
	shares, err := s.shareRepo.ListBetween(ctx, task.OwnerID, principalID, domain.ActiveStates)
	if err != nil {
		return false, fmt.Errorf("failed to list active shares: %w", err)
	}

	for i := range shares {
		if shares[i].Covers(task.ID) {
			return true, nil
		}
	}
	return false, nil
}
