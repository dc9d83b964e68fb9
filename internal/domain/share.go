package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Permission string
type ScopeType string
type LifecycleState string

const (
	PermissionNone Permission = ""
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
	PermissionFull Permission = "full"

	ScopeFull      ScopeType = "full"
	ScopeSelective ScopeType = "selective"
)

const (
	StatePending             LifecycleState = "pending"
	StateAccepted            LifecycleState = "accepted"
	StateDeclinedByRecipient LifecycleState = "declined_by_recipient"
	StateRevokedByOwner      LifecycleState = "revoked_by_owner"
	StateRevokedByRecipient  LifecycleState = "revoked_by_recipient"
)

// ActiveStates — состояния, в которых share ещё действует или ждёт ответа получателя.
var ActiveStates = []LifecycleState{StatePending, StateAccepted}

func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit || p == PermissionFull
}

// Rank задаёт порядок view < edit < full для выбора максимального уровня доступа.
func (p Permission) Rank() int {
	switch p {
	case PermissionView:
		return 1
	case PermissionEdit:
		return 2
	case PermissionFull:
		return 3
	default:
		return 0
	}
}

func (s ScopeType) Valid() bool {
	return s == ScopeFull || s == ScopeSelective
}

func (s LifecycleState) IsActive() bool {
	return s == StatePending || s == StateAccepted
}

func (s LifecycleState) IsTerminal() bool {
	return s == StateDeclinedByRecipient || s == StateRevokedByOwner || s == StateRevokedByRecipient
}

type Share struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	OwnerID         string         `json:"owner_id" db:"owner_id"`
	RecipientID     string         `json:"recipient_id" db:"recipient_id"`
	Permission      Permission     `json:"permission" db:"permission"`
	ScopeType       ScopeType      `json:"scope_type" db:"scope_type"`
	SelectedTaskIDs pq.StringArray `json:"selected_task_ids,omitempty" db:"selected_task_ids"`
	State           LifecycleState `json:"state" db:"state"`
	Message         string         `json:"message,omitempty" db:"message"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// Covers сообщает, покрывает ли область действия share данную задачу.
// Удалённые задачи из selected_task_ids просто перестают совпадать.
func (s *Share) Covers(taskID string) bool {
	if s.ScopeType == ScopeFull {
		return true
	}
	for _, id := range s.SelectedTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
