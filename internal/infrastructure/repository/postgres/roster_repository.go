package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
)

type userTeamRow struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	Name        string     `db:"name"`
	TotalPoints int        `db:"total_points"`
	Locked      bool       `db:"is_locked"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

func (r userTeamRow) toDomain() roster.UserTeam {
	return roster.UserTeam{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		TotalPoints: r.TotalPoints,
		Locked:      r.Locked,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type memberInfoRow struct {
	PlayerID   int64     `db:"player_id"`
	PlayerName string    `db:"player_name"`
	Position   string    `db:"position"`
	TeamID     int64     `db:"team_id"`
	TeamName   string    `db:"team_name"`
	AddedAt    time.Time `db:"added_at"`
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.UserTeam, error) {
	const query = `
SELECT id, user_id, name, total_points, is_locked, created_at, updated_at
FROM user_teams
ORDER BY id`

	var rows []userTeamRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}

	out := make([]roster.UserTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) GetByID(ctx context.Context, id int64) (roster.UserTeam, bool, error) {
	const query = `
SELECT id, user_id, name, total_points, is_locked, created_at, updated_at
FROM user_teams
WHERE id = $1`

	var row userTeamRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return roster.UserTeam{}, false, nil
		}
		return roster.UserTeam{}, false, fmt.Errorf("get user team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) GetByUserID(ctx context.Context, userID int64) (roster.UserTeam, bool, error) {
	const query = `
SELECT id, user_id, name, total_points, is_locked, created_at, updated_at
FROM user_teams
WHERE user_id = $1`

	var row userTeamRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return roster.UserTeam{}, false, nil
		}
		return roster.UserTeam{}, false, fmt.Errorf("get user team by user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) UserHasTeam(ctx context.Context, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_teams WHERE user_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check user team: %w", err)
	}
	return exists, nil
}

func (r *RosterRepository) Create(ctx context.Context, t roster.UserTeam) (roster.UserTeam, error) {
	const query = `
INSERT INTO user_teams (user_id, name, total_points, is_locked, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	err := r.db.GetContext(ctx, &t.ID, query, t.UserID, t.Name, t.TotalPoints, t.Locked, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return roster.UserTeam{}, roster.ErrUserTeamExists
		}
		return roster.UserTeam{}, fmt.Errorf("create user team: %w", err)
	}
	return t, nil
}

func (r *RosterRepository) Update(ctx context.Context, t roster.UserTeam) error {
	const query = `
UPDATE user_teams
SET name = $2, total_points = $3, is_locked = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.TotalPoints, t.Locked, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update user team: id %d not found", t.ID)
	}
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM user_teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete user team: id %d not found", id)
	}
	return nil
}

func (r *RosterRepository) ListMembers(ctx context.Context, userTeamID int64) ([]roster.MemberInfo, error) {
	const query = `
SELECT utp.player_id,
       p.name      AS player_name,
       p.position  AS position,
       p.team_id   AS team_id,
       t.name      AS team_name,
       utp.added_at
FROM user_team_players utp
JOIN players p ON p.id = utp.player_id
JOIN teams t ON t.id = p.team_id
WHERE utp.user_team_id = $1
ORDER BY utp.added_at, utp.player_id`

	var rows []memberInfoRow
	if err := r.db.SelectContext(ctx, &rows, query, userTeamID); err != nil {
		return nil, fmt.Errorf("list roster members: %w", err)
	}

	out := make([]roster.MemberInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.MemberInfo{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			Position:   player.Position(row.Position),
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			AddedAt:    row.AddedAt,
		})
	}
	return out, nil
}

func (r *RosterRepository) HasMember(ctx context.Context, userTeamID, playerID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM user_team_players
    WHERE user_team_id = $1 AND player_id = $2
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userTeamID, playerID); err != nil {
		return false, fmt.Errorf("check roster member: %w", err)
	}
	return exists, nil
}

func (r *RosterRepository) AddMember(ctx context.Context, m roster.Member) error {
	const query = `
INSERT INTO user_team_players (user_team_id, player_id, added_at)
VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, m.UserTeamID, m.PlayerID, m.AddedAt); err != nil {
		if isUniqueViolation(err) {
			return roster.ErrMemberExists
		}
		return fmt.Errorf("add roster member: %w", err)
	}
	return nil
}

func (r *RosterRepository) RemoveMember(ctx context.Context, userTeamID, playerID int64) error {
	const query = `
DELETE FROM user_team_players
WHERE user_team_id = $1 AND player_id = $2`

	result, err := r.db.ExecContext(ctx, query, userTeamID, playerID)
	if err != nil {
		return fmt.Errorf("remove roster member: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("remove roster member: player %d not on team %d", playerID, userTeamID)
	}
	return nil
}

func (r *RosterRepository) UpdateTotalPoints(ctx context.Context, userTeamID int64, totalPoints int) error {
	const query = `
UPDATE user_teams
SET total_points = $2, updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userTeamID, totalPoints)
	if err != nil {
		return fmt.Errorf("update total points: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update total points: user team %d not found", userTeamID)
	}
	return nil
}
