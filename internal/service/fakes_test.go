package service

import (
	"context"
	"planshare/internal/domain"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// In-memory repository fakes. The share fake mirrors the database's partial
// unique constraint so duplicate-create behavior can be tested without Postgres.

type fakeShareRepo struct {
	mu     sync.Mutex
	shares map[uuid.UUID]*domain.Share
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[uuid.UUID]*domain.Share)}
}

func seedShare(repo *fakeShareRepo, share domain.Share) uuid.UUID {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	repo.shares[share.ID] = cloneShare(&share)
	return share.ID
}

func cloneShare(s *domain.Share) *domain.Share {
	c := *s
	c.SelectedTaskIDs = append(pq.StringArray(nil), s.SelectedTaskIDs...)
	return &c
}

func stateIn(state domain.LifecycleState, states []domain.LifecycleState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

func (r *fakeShareRepo) Create(_ context.Context, share *domain.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.shares {
		if existing.OwnerID == share.OwnerID &&
			existing.RecipientID == share.RecipientID &&
			existing.State.IsActive() {
			return domain.ErrDuplicateActiveShare
		}
	}

	share.CreatedAt = time.Now()
	share.UpdatedAt = share.CreatedAt
	r.shares[share.ID] = cloneShare(share)
	return nil
}

func (r *fakeShareRepo) GetByID(_ context.Context, shareID uuid.UUID) (*domain.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	share, ok := r.shares[shareID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneShare(share), nil
}

func (r *fakeShareRepo) list(match func(*domain.Share) bool) []domain.Share {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Share
	for _, share := range r.shares {
		if match(share) {
			out = append(out, *cloneShare(share))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *fakeShareRepo) ListByOwner(_ context.Context, ownerID string, states []domain.LifecycleState) ([]domain.Share, error) {
	return r.list(func(s *domain.Share) bool {
		return s.OwnerID == ownerID && stateIn(s.State, states)
	}), nil
}

func (r *fakeShareRepo) ListByRecipient(_ context.Context, recipientID string, states []domain.LifecycleState) ([]domain.Share, error) {
	return r.list(func(s *domain.Share) bool {
		return s.RecipientID == recipientID && stateIn(s.State, states)
	}), nil
}

func (r *fakeShareRepo) ListBetween(_ context.Context, ownerID, recipientID string, states []domain.LifecycleState) ([]domain.Share, error) {
	return r.list(func(s *domain.Share) bool {
		return s.OwnerID == ownerID && s.RecipientID == recipientID && stateIn(s.State, states)
	}), nil
}

func (r *fakeShareRepo) Update(_ context.Context, share *domain.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.shares[share.ID]
	if !ok || existing.OwnerID != share.OwnerID || !existing.State.IsActive() {
		return domain.ErrNotFound
	}

	existing.Permission = share.Permission
	existing.ScopeType = share.ScopeType
	existing.SelectedTaskIDs = append(pq.StringArray(nil), share.SelectedTaskIDs...)
	existing.Message = share.Message
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeShareRepo) UpdateState(_ context.Context, shareID uuid.UUID, from []domain.LifecycleState, to domain.LifecycleState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.shares[shareID]
	if !ok || !stateIn(existing.State, from) {
		return domain.ErrNotFound
	}

	existing.State = to
	existing.UpdatedAt = time.Now()
	return nil
}

type fakeTaskRepo struct {
	mu         sync.Mutex
	tasks      map[string]*domain.Task
	failOwners map[string]error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:      make(map[string]*domain.Task),
		failOwners: make(map[string]error),
	}
}

func seedTask(repo *fakeTaskRepo, task domain.Task) string {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	clone := task
	repo.tasks[task.ID] = &clone
	return task.ID
}

func (r *fakeTaskRepo) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failOwners[ownerID]; ok {
		return nil, err
	}

	var out []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *fakeTaskRepo) UpdateFields(_ context.Context, taskID string, patch *domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Timer != nil {
		task.Timer = patch.Timer
	}
	if patch.ScheduledAt != nil {
		task.ScheduledAt = *patch.ScheduledAt
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.YoutubeURL != nil {
		task.YoutubeURL = *patch.YoutubeURL
	}
	task.UpdatedAt = time.Now()

	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[taskID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

type fakePrincipalRepo struct {
	principals []domain.Principal
}

func newFakePrincipalRepo(principals ...domain.Principal) *fakePrincipalRepo {
	return &fakePrincipalRepo{principals: principals}
}

func (r *fakePrincipalRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.Principal, error) {
	for i := range r.principals {
		if strings.EqualFold(r.principals[i].Email, identifier) || r.principals[i].Username == identifier {
			clone := r.principals[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePrincipalRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Principal, error) {
	var out []domain.Principal
	for _, id := range ids {
		for i := range r.principals {
			if r.principals[i].ID == id {
				out = append(out, r.principals[i])
			}
		}
	}
	return out, nil
}
