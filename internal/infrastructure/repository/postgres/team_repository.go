package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
)

type teamRow struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	LogoURL   string     `db:"logo_url"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (r teamRow) toDomain() team.Team {
	return team.Team{
		ID:        r.ID,
		Name:      r.Name,
		LogoURL:   r.LogoURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	const query = `
SELECT id, name, logo_url, created_at, updated_at
FROM teams
ORDER BY id`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	const query = `
SELECT id, name, logo_url, created_at, updated_at
FROM teams
WHERE id = $1`

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	const query = `
SELECT id, name, logo_url, created_at, updated_at
FROM teams
WHERE name = $1`

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by name: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	const query = `
INSERT INTO teams (name, logo_url, created_at)
VALUES ($1, $2, $3)
RETURNING id`

	if err := r.db.GetContext(ctx, &t.ID, query, t.Name, t.LogoURL, t.CreatedAt); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	const query = `
UPDATE teams
SET name = $2, logo_url = $3, updated_at = $4
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.LogoURL, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update team: id %d not found", t.ID)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete team: id %d not found", id)
	}
	return nil
}
