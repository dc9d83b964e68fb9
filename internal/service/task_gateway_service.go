package service

import (
	"context"
	"planshare/internal/domain"
)

// TaskGatewayService авторизует изменения shared-задач. Уровень доступа
// перечитывается из хранилища при каждом вызове: решение из ранее отданного
// списка могло устареть после revoke или сужения scope.
type TaskGatewayService struct {
	permissions *PermissionService
	taskRepo    TaskRepository
}

func NewTaskGatewayService(permissions *PermissionService, taskRepo TaskRepository) *TaskGatewayService {
	return &TaskGatewayService{
		permissions: permissions,
		taskRepo:    taskRepo,
	}
}

// UpdateSharedTask требует edit или full. Патч ограничен типом TaskPatch;
// владелец, флаги завершения и архивации этим путём недостижимы.
func (s *TaskGatewayService) UpdateSharedTask(ctx context.Context, callerID, taskID string, patch *domain.TaskPatch) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	perm, err := s.permissions.effectiveForTask(ctx, callerID, task)
	if err != nil {
		return nil, err
	}

	if perm.Rank() >= domain.PermissionEdit.Rank() {
		return s.taskRepo.UpdateFields(ctx, taskID, patch)
	}

	return nil, s.denial(ctx, callerID, task)
}

// DeleteSharedTask требует ровно full.
func (s *TaskGatewayService) DeleteSharedTask(ctx context.Context, callerID, taskID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	perm, err := s.permissions.effectiveForTask(ctx, callerID, task)
	if err != nil {
		return err
	}

	if perm == domain.PermissionFull {
		return s.taskRepo.Delete(ctx, taskID)
	}

	return s.denial(ctx, callerID, task)
}

// denial: Forbidden — когда действующий share связывает стороны и покрывает
// задачу, но уровня не хватает; во всех остальных случаях NotFound.
func (s *TaskGatewayService) denial(ctx context.Context, callerID string, task *domain.Task) error {
	covered, err := s.permissions.hasActiveCoverage(ctx, callerID, task)
	if err != nil {
		return err
	}
	if covered {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}
