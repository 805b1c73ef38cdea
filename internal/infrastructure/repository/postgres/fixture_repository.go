package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
)

type fixtureRow struct {
	ID          int64      `db:"id"`
	MatchweekID int64      `db:"matchweek_id"`
	HomeTeamID  int64      `db:"home_team_id"`
	AwayTeamID  int64      `db:"away_team_id"`
	KickoffAt   time.Time  `db:"kickoff_at"`
	IsCompleted bool       `db:"is_completed"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

func (r fixtureRow) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:          r.ID,
		MatchweekID: r.MatchweekID,
		HomeTeamID:  r.HomeTeamID,
		AwayTeamID:  r.AwayTeamID,
		KickoffAt:   r.KickoffAt,
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	const query = `
SELECT id, matchweek_id, home_team_id, away_team_id, kickoff_at, is_completed, created_at, updated_at
FROM fixtures
ORDER BY kickoff_at, id`

	var rows []fixtureRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) ListByMatchweek(ctx context.Context, matchweekID int64) ([]fixture.Fixture, error) {
	const query = `
SELECT id, matchweek_id, home_team_id, away_team_id, kickoff_at, is_completed, created_at, updated_at
FROM fixtures
WHERE matchweek_id = $1
ORDER BY kickoff_at, id`

	var rows []fixtureRow
	if err := r.db.SelectContext(ctx, &rows, query, matchweekID); err != nil {
		return nil, fmt.Errorf("list fixtures by matchweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	const query = `
SELECT id, matchweek_id, home_team_id, away_team_id, kickoff_at, is_completed, created_at, updated_at
FROM fixtures
WHERE id = $1`

	var row fixtureRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, f fixture.Fixture) (fixture.Fixture, error) {
	const query = `
INSERT INTO fixtures (matchweek_id, home_team_id, away_team_id, kickoff_at, is_completed, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	if err := r.db.GetContext(ctx, &f.ID, query,
		f.MatchweekID, f.HomeTeamID, f.AwayTeamID, f.KickoffAt, f.IsCompleted, f.CreatedAt,
	); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}
	return f, nil
}

func (r *FixtureRepository) Update(ctx context.Context, f fixture.Fixture) error {
	const query = `
UPDATE fixtures
SET kickoff_at = $2, is_completed = $3, updated_at = $4
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, f.ID, f.KickoffAt, f.IsCompleted, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update fixture: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update fixture: id %d not found", f.ID)
	}
	return nil
}

func (r *FixtureRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM fixtures WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete fixture: id %d not found", id)
	}
	return nil
}
