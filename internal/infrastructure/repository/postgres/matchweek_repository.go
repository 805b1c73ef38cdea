package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
)

type matchweekRow struct {
	ID         int64      `db:"id"`
	WeekNumber int        `db:"week_number"`
	Deadline   time.Time  `db:"deadline"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

func (r matchweekRow) toDomain() matchweek.Matchweek {
	return matchweek.Matchweek{
		ID:         r.ID,
		WeekNumber: r.WeekNumber,
		Deadline:   r.Deadline,
		Status:     matchweek.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type MatchweekRepository struct {
	db *sqlx.DB
}

func NewMatchweekRepository(db *sqlx.DB) *MatchweekRepository {
	return &MatchweekRepository{db: db}
}

func (r *MatchweekRepository) List(ctx context.Context) ([]matchweek.Matchweek, error) {
	const query = `
SELECT id, week_number, deadline, status, created_at, updated_at
FROM matchweeks
ORDER BY week_number`

	var rows []matchweekRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list matchweeks: %w", err)
	}

	out := make([]matchweek.Matchweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchweekRepository) GetByID(ctx context.Context, id int64) (matchweek.Matchweek, bool, error) {
	const query = `
SELECT id, week_number, deadline, status, created_at, updated_at
FROM matchweeks
WHERE id = $1`

	var row matchweekRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return matchweek.Matchweek{}, false, nil
		}
		return matchweek.Matchweek{}, false, fmt.Errorf("get matchweek: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchweekRepository) GetByWeekNumber(ctx context.Context, weekNumber int) (matchweek.Matchweek, bool, error) {
	const query = `
SELECT id, week_number, deadline, status, created_at, updated_at
FROM matchweeks
WHERE week_number = $1`

	var row matchweekRow
	if err := r.db.GetContext(ctx, &row, query, weekNumber); err != nil {
		if isNotFound(err) {
			return matchweek.Matchweek{}, false, nil
		}
		return matchweek.Matchweek{}, false, fmt.Errorf("get matchweek by week number: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchweekRepository) Create(ctx context.Context, m matchweek.Matchweek) (matchweek.Matchweek, error) {
	const query = `
INSERT INTO matchweeks (week_number, deadline, status, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	if err := r.db.GetContext(ctx, &m.ID, query, m.WeekNumber, m.Deadline, string(m.Status), m.CreatedAt); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("create matchweek: %w", err)
	}
	return m, nil
}

func (r *MatchweekRepository) Update(ctx context.Context, m matchweek.Matchweek) error {
	const query = `
UPDATE matchweeks
SET week_number = $2, deadline = $3, status = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, m.ID, m.WeekNumber, m.Deadline, string(m.Status), m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update matchweek: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update matchweek: id %d not found", m.ID)
	}
	return nil
}

func (r *MatchweekRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM matchweeks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete matchweek: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete matchweek: id %d not found", id)
	}
	return nil
}
