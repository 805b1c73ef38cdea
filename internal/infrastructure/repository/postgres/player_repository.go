package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
)

type playerRow struct {
	ID        int64      `db:"id"`
	TeamID    int64      `db:"team_id"`
	Name      string     `db:"name"`
	Position  string     `db:"position"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (r playerRow) toDomain() player.Player {
	return player.Player{
		ID:        r.ID,
		TeamID:    r.TeamID,
		Name:      r.Name,
		Position:  player.Position(r.Position),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	const query = `
SELECT id, team_id, name, position, created_at, updated_at
FROM players
ORDER BY id`

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	const query = `
SELECT id, team_id, name, position, created_at, updated_at
FROM players
WHERE team_id = $1
ORDER BY id`

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	const query = `
SELECT id, team_id, name, position, created_at, updated_at
FROM players
WHERE id = $1`

	var row playerRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	const query = `
INSERT INTO players (team_id, name, position, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	if err := r.db.GetContext(ctx, &p.ID, query, p.TeamID, p.Name, string(p.Position), p.CreatedAt); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return p, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	const query = `
UPDATE players
SET team_id = $2, name = $3, position = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, p.ID, p.TeamID, p.Name, string(p.Position), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update player: id %d not found", p.ID)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete player: id %d not found", id)
	}
	return nil
}
