package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"planshare/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ShareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

const uniqueViolation = "23505"

func statesToStrings(states []domain.LifecycleState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, string(s))
	}
	return out
}

// Create вставляет share под частичный уникальный индекс (owner, recipient, active).
// Из двух конкурирующих вставок для одной пары ровно одна получает 23505.
func (r *ShareRepository) Create(ctx context.Context, share *domain.Share) error {
	query := `
        INSERT INTO shares (
            id, owner_id, recipient_id, permission,
            scope_type, selected_task_ids, state, message,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
        ) RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		share.ID,
		share.OwnerID,
		share.RecipientID,
		share.Permission,
		share.ScopeType,
		share.SelectedTaskIDs,
		share.State,
		share.Message,
	).Scan(&share.CreatedAt, &share.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateActiveShare
		}
		return fmt.Errorf("failed to create share: %w", err)
	}

	return nil
}

func (r *ShareRepository) GetByID(ctx context.Context, shareID uuid.UUID) (*domain.Share, error) {
	var share domain.Share
	query := `SELECT * FROM shares WHERE id = $1`
	if err := r.db.GetContext(ctx, &share, query, shareID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get share by id: %w", err)
	}
	return &share, nil
}

func (r *ShareRepository) ListByOwner(ctx context.Context, ownerID string, states []domain.LifecycleState) ([]domain.Share, error) {
	query := `
        SELECT * FROM shares
        WHERE owner_id = $1
        AND state = ANY($2)
        ORDER BY created_at DESC`

	var shares []domain.Share
	if err := r.db.SelectContext(ctx, &shares, query, ownerID, pq.Array(statesToStrings(states))); err != nil {
		return nil, fmt.Errorf("failed to list owner shares: %w", err)
	}
	return shares, nil
}

func (r *ShareRepository) ListByRecipient(ctx context.Context, recipientID string, states []domain.LifecycleState) ([]domain.Share, error) {
	query := `
        SELECT * FROM shares
        WHERE recipient_id = $1
        AND state = ANY($2)
        ORDER BY created_at DESC`

	var shares []domain.Share
	if err := r.db.SelectContext(ctx, &shares, query, recipientID, pq.Array(statesToStrings(states))); err != nil {
		return nil, fmt.Errorf("failed to list recipient shares: %w", err)
	}
	return shares, nil
}

func (r *ShareRepository) ListBetween(ctx context.Context, ownerID, recipientID string, states []domain.LifecycleState) ([]domain.Share, error) {
	query := `
        SELECT * FROM shares
        WHERE owner_id = $1
        AND recipient_id = $2
        AND state = ANY($3)
        ORDER BY created_at DESC`

	var shares []domain.Share
	if err := r.db.SelectContext(ctx, &shares, query, ownerID, recipientID, pq.Array(statesToStrings(states))); err != nil {
		return nil, fmt.Errorf("failed to list shares between principals: %w", err)
	}
	return shares, nil
}

// Update меняет условия share, пока он активен и принадлежит владельцу.
func (r *ShareRepository) Update(ctx context.Context, share *domain.Share) error {
	query := `
        UPDATE shares
        SET permission = $3,
            scope_type = $4,
            selected_task_ids = $5,
            message = $6,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
        AND owner_id = $2
        AND state = ANY($7)`

	result, err := r.db.ExecContext(
		ctx,
		query,
		share.ID,
		share.OwnerID,
		share.Permission,
		share.ScopeType,
		share.SelectedTaskIDs,
		share.Message,
		pq.Array(statesToStrings(domain.ActiveStates)),
	)
	if err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdateState — переход жизненного цикла одним compare-and-set запросом.
// Ноль затронутых строк означает, что share отсутствует или уже покинул
// ожидаемое состояние; вызывающему это неразличимо.
func (r *ShareRepository) UpdateState(ctx context.Context, shareID uuid.UUID, from []domain.LifecycleState, to domain.LifecycleState) error {
	query := `
        UPDATE shares
        SET state = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
        AND state = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, shareID, to, pq.Array(statesToStrings(from)))
	if err != nil {
		return fmt.Errorf("failed to update share state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
