package service

import (
	"context"
	"log"
	"planshare/internal/domain"
	"sort"
	"time"
)

// AgendaService собирает календарь принципала: собственные задачи в пределах
// горизонта плюс доступные через принятые share задачи других владельцев.
type AgendaService struct {
	shareRepo     ShareRepository
	taskRepo      TaskRepository
	principalRepo PrincipalRepository
}

func NewAgendaService(shareRepo ShareRepository, taskRepo TaskRepository, principalRepo PrincipalRepository) *AgendaService {
	return &AgendaService{
		shareRepo:     shareRepo,
		taskRepo:      taskRepo,
		principalRepo: principalRepo,
	}
}

// AgendaItem помечает чужие задачи, чтобы клиент мог ограничить свой UI
// выданным уровнем доступа.
type AgendaItem struct {
	domain.Task
	IsShared   bool              `json:"is_shared"`
	ShareID    string            `json:"share_id,omitempty"`
	OwnerName  string            `json:"owner_name,omitempty"`
	Permission domain.Permission `json:"permission,omitempty"`
}

// BuildUpcoming: свои задачи в [now, now+horizon], чужие — только за сегодня.
// Асимметрия намеренная: агенда получателя не должна заполняться всем будущим
// расписанием другого человека.
func (s *AgendaService) BuildUpcoming(ctx context.Context, principalID string, now time.Time, horizon time.Duration) ([]AgendaItem, error) {
	own, err := s.taskRepo.ListByOwner(ctx, principalID)
	if err != nil {
		return nil, err
	}

	end := now.Add(horizon)
	items := make([]AgendaItem, 0, len(own))
	for i := range own {
		if own[i].ScheduledAt.Before(now) || !own[i].ScheduledAt.Before(end) {
			continue
		}
		items = append(items, AgendaItem{Task: own[i]})
	}

	shared, err := s.ListSharedEvents(ctx, principalID, now)
	if err != nil {
		return nil, err
	}
	items = append(items, shared...)

	sortAgenda(items)
	return items, nil
}

// ListSharedEvents возвращает задачи за сегодня из всех принятых share.
func (s *AgendaService) ListSharedEvents(ctx context.Context, recipientID string, now time.Time) ([]AgendaItem, error) {
	accepted := []domain.LifecycleState{domain.StateAccepted}
	shares, err := s.shareRepo.ListByRecipient(ctx, recipientID, accepted)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	items := make([]AgendaItem, 0)
	ownerIDs := make([]string, 0, len(shares))
	seen := make(map[string]bool, len(shares))

	for i := range shares {
		share := &shares[i]

		tasks, err := s.taskRepo.ListByOwner(ctx, share.OwnerID)
		if err != nil {
			// Недоступные задачи одного владельца не должны ронять всю агенду
			log.Printf("[ListSharedEvents] Failed to list tasks for owner %s: %v", share.OwnerID, err)
			continue
		}

		for j := range tasks {
			if !share.Covers(tasks[j].ID) {
				continue
			}
			if tasks[j].ScheduledAt.Before(dayStart) || !tasks[j].ScheduledAt.Before(dayEnd) {
				continue
			}
			items = append(items, AgendaItem{
				Task:       tasks[j],
				IsShared:   true,
				ShareID:    share.ID.String(),
				Permission: share.Permission,
			})
		}

		if !seen[share.OwnerID] {
			seen[share.OwnerID] = true
			ownerIDs = append(ownerIDs, share.OwnerID)
		}
	}

	names, err := s.ownerNames(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].OwnerName = names[items[i].Task.OwnerID]
	}

	sortAgenda(items)
	return items, nil
}

func (s *AgendaService) ownerNames(ctx context.Context, ownerIDs []string) (map[string]string, error) {
	principals, err := s.principalRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(principals))
	for i := range principals {
		names[principals[i].ID] = principals[i].DisplayName()
	}
	return names, nil
}

// sortAgenda: по времени, при равенстве свои задачи раньше чужих, затем по id
// задачи — порядок стабилен между запросами.
func sortAgenda(items []AgendaItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		if items[i].IsShared != items[j].IsShared {
			return !items[i].IsShared
		}
		return items[i].Task.ID < items[j].Task.ID
	})
}
