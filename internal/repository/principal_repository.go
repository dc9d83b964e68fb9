package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"planshare/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PrincipalRepository struct {
	db *sqlx.DB
}

func NewPrincipalRepository(db *sqlx.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

// FindByIdentifier ищет получателя по email (без учёта регистра) или по
// точному совпадению username.
func (r *PrincipalRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Principal, error) {
	query := `
        SELECT * FROM principals
        WHERE LOWER(email) = LOWER($1)
        OR username = $1
        LIMIT 1`

	var principal domain.Principal
	if err := r.db.GetContext(ctx, &principal, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find principal by identifier: %w", err)
	}
	return &principal, nil
}

func (r *PrincipalRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Principal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT * FROM principals WHERE id = ANY($1)`

	var principals []domain.Principal
	if err := r.db.SelectContext(ctx, &principals, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get principals by ids: %w", err)
	}
	return principals, nil
}
