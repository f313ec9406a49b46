package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

// CardRepository defines persistence access for payment cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id int64) (*domain.Card, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id int64) error
}

type cardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository returns a Postgres-backed implementation.
func NewCardRepository(pool *pgxpool.Pool) CardRepository {
	return &cardRepository{pool: pool}
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	const query = `
        INSERT INTO cards (user_id, number, holder, expiration_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		card.UserID,
		card.Number,
		card.Holder,
		card.ExpirationDate,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	const query = `
        SELECT id, user_id, number, holder, expiration_date, created_at, updated_at
        FROM cards WHERE id=$1`

	var card domain.Card
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.UserID,
		&card.Number,
		&card.Holder,
		&card.ExpirationDate,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	const query = `
        SELECT id, user_id, number, holder, expiration_date, created_at, updated_at
        FROM cards WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.Number,
			&card.Holder,
			&card.ExpirationDate,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	const query = `
        UPDATE cards SET number=$1, holder=$2, expiration_date=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING user_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		card.Number,
		card.Holder,
		card.ExpirationDate,
		card.ID,
	).Scan(&card.UserID, &card.CreatedAt, &card.UpdatedAt)
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM cards WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
