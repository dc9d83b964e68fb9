package domain

import (
	"time"
)

// Task — запись из внешнего Task Store. Этот сервис её не создаёт и не владеет
// её жизненным циклом, только читает и изменяет разрешённые поля.
type Task struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Priority    string    `json:"priority" db:"priority"`
	Timer       *int64    `json:"timer,omitempty" db:"timer"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Notes       string    `json:"notes" db:"notes"`
	YoutubeURL  string    `json:"youtube_url" db:"youtube_url"`
	Completed   bool      `json:"completed" db:"completed"`
	Archived    bool      `json:"archived" db:"archived"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TaskPatch — поля, которые можно менять через shared-доступ.
// owner_id, id и флаги завершения/архивации здесь отсутствуют намеренно:
// их нельзя изменить этим путём даже с уровнем full.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Timer       *int64     `json:"timer,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	YoutubeURL  *string    `json:"youtube_url,omitempty"`
}

func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Category == nil &&
		p.Priority == nil &&
		p.Timer == nil &&
		p.ScheduledAt == nil &&
		p.Notes == nil &&
		p.YoutubeURL == nil
}
