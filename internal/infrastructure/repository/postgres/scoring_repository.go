package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
)

type matchEventRow struct {
	ID        int64     `db:"id"`
	FixtureID int64     `db:"fixture_id"`
	PlayerID  int64     `db:"player_id"`
	EventType string    `db:"event_type"`
	Points    int       `db:"points"`
	Minute    *int      `db:"minute"`
	CreatedAt time.Time `db:"created_at"`
}

func (r matchEventRow) toDomain() scoring.MatchEvent {
	return scoring.MatchEvent{
		ID:        r.ID,
		FixtureID: r.FixtureID,
		PlayerID:  r.PlayerID,
		Type:      scoring.EventType(r.EventType),
		Points:    r.Points,
		Minute:    r.Minute,
		CreatedAt: r.CreatedAt,
	}
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e scoring.MatchEvent) (scoring.MatchEvent, error) {
	const query = `
INSERT INTO match_events (fixture_id, player_id, event_type, points, minute, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	err := r.db.GetContext(ctx, &e.ID, query,
		e.FixtureID, e.PlayerID, string(e.Type), e.Points, e.Minute, e.CreatedAt,
	)
	if err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("create match event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (scoring.MatchEvent, bool, error) {
	const query = `
SELECT id, fixture_id, player_id, event_type, points, minute, created_at
FROM match_events
WHERE id = $1`

	var row matchEventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return scoring.MatchEvent{}, false, nil
		}
		return scoring.MatchEvent{}, false, fmt.Errorf("get match event: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]scoring.MatchEvent, error) {
	const query = `
SELECT id, fixture_id, player_id, event_type, points, minute, created_at
FROM match_events
WHERE fixture_id = $1
ORDER BY id`

	var rows []matchEventRow
	if err := r.db.SelectContext(ctx, &rows, query, fixtureID); err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	out := make([]scoring.MatchEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) ListByMatchweek(ctx context.Context, matchweekID int64) ([]scoring.MatchEvent, error) {
	const query = `
SELECT me.id, me.fixture_id, me.player_id, me.event_type, me.points, me.minute, me.created_at
FROM match_events me
JOIN fixtures f ON f.id = me.fixture_id
WHERE f.matchweek_id = $1
ORDER BY me.id`

	var rows []matchEventRow
	if err := r.db.SelectContext(ctx, &rows, query, matchweekID); err != nil {
		return nil, fmt.Errorf("list match events by matchweek: %w", err)
	}

	out := make([]scoring.MatchEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM match_events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete match event: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete match event: id %d not found", id)
	}
	return nil
}

type snapshotRow struct {
	ID          int64     `db:"id"`
	UserTeamID  int64     `db:"user_team_id"`
	MatchweekID int64     `db:"matchweek_id"`
	TeamName    string    `db:"team_name"`
	SnapshotAt  time.Time `db:"snapshot_at"`
}

type snapshotPlayerRow struct {
	SnapshotID int64     `db:"snapshot_id"`
	PlayerID   int64     `db:"player_id"`
	PlayerName string    `db:"player_name"`
	Position   string    `db:"position"`
	TeamName   string    `db:"team_name"`
	AddedAt    time.Time `db:"added_at"`
}

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts the snapshot row and its players in one transaction. A
// concurrent insert for the same team and matchweek loses on the unique
// constraint and the stored snapshot is returned instead.
func (r *SnapshotRepository) Create(ctx context.Context, s scoring.Snapshot) (scoring.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("begin tx for snapshot: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertQuery = `
INSERT INTO user_team_snapshots (user_team_id, matchweek_id, team_name, snapshot_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	if err := tx.GetContext(ctx, &s.ID, insertQuery, s.UserTeamID, s.MatchweekID, s.TeamName, s.SnapshotAt); err != nil {
		if isUniqueViolation(err) {
			existing, found, getErr := r.Get(ctx, s.UserTeamID, s.MatchweekID)
			if getErr != nil {
				return scoring.Snapshot{}, getErr
			}
			if found {
				return existing, nil
			}
		}
		return scoring.Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}

	const insertPlayerQuery = `
INSERT INTO user_team_snapshot_players (snapshot_id, player_id, player_name, position, team_name, added_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, p := range s.Players {
		if _, err := tx.ExecContext(ctx, insertPlayerQuery,
			s.ID, p.PlayerID, p.PlayerName, string(p.Position), p.TeamName, p.AddedAt,
		); err != nil {
			return scoring.Snapshot{}, fmt.Errorf("create snapshot player %d: %w", p.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return scoring.Snapshot{}, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return s, nil
}

func (r *SnapshotRepository) Get(ctx context.Context, userTeamID, matchweekID int64) (scoring.Snapshot, bool, error) {
	const query = `
SELECT id, user_team_id, matchweek_id, team_name, snapshot_at
FROM user_team_snapshots
WHERE user_team_id = $1 AND matchweek_id = $2`

	var row snapshotRow
	if err := r.db.GetContext(ctx, &row, query, userTeamID, matchweekID); err != nil {
		if isNotFound(err) {
			return scoring.Snapshot{}, false, nil
		}
		return scoring.Snapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}

	snapshot, err := r.attachPlayers(ctx, row)
	if err != nil {
		return scoring.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (r *SnapshotRepository) ListByMatchweek(ctx context.Context, matchweekID int64) ([]scoring.Snapshot, error) {
	const query = `
SELECT id, user_team_id, matchweek_id, team_name, snapshot_at
FROM user_team_snapshots
WHERE matchweek_id = $1
ORDER BY id`

	return r.list(ctx, query, matchweekID)
}

func (r *SnapshotRepository) ListByUserTeam(ctx context.Context, userTeamID int64) ([]scoring.Snapshot, error) {
	const query = `
SELECT id, user_team_id, matchweek_id, team_name, snapshot_at
FROM user_team_snapshots
WHERE user_team_id = $1
ORDER BY id`

	return r.list(ctx, query, userTeamID)
}

func (r *SnapshotRepository) list(ctx context.Context, query string, arg int64) ([]scoring.Snapshot, error) {
	var rows []snapshotRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]scoring.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := r.attachPlayers(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, snapshot)
	}
	return out, nil
}

func (r *SnapshotRepository) attachPlayers(ctx context.Context, row snapshotRow) (scoring.Snapshot, error) {
	const query = `
SELECT snapshot_id, player_id, player_name, position, team_name, added_at
FROM user_team_snapshot_players
WHERE snapshot_id = $1
ORDER BY added_at, player_id`

	var playerRows []snapshotPlayerRow
	if err := r.db.SelectContext(ctx, &playerRows, query, row.ID); err != nil {
		return scoring.Snapshot{}, fmt.Errorf("list snapshot players: %w", err)
	}

	players := make([]scoring.SnapshotPlayer, 0, len(playerRows))
	for _, p := range playerRows {
		players = append(players, scoring.SnapshotPlayer{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Position:   player.Position(p.Position),
			TeamName:   p.TeamName,
			AddedAt:    p.AddedAt,
		})
	}

	return scoring.Snapshot{
		ID:          row.ID,
		UserTeamID:  row.UserTeamID,
		MatchweekID: row.MatchweekID,
		TeamName:    row.TeamName,
		SnapshotAt:  row.SnapshotAt,
		Players:     players,
	}, nil
}

type matchweekPointsRow struct {
	UserTeamID   int64     `db:"user_team_id"`
	MatchweekID  int64     `db:"matchweek_id"`
	Points       int       `db:"points"`
	Goals        int       `db:"goals"`
	Assists      int       `db:"assists"`
	CleanSheets  int       `db:"clean_sheets"`
	YellowCards  int       `db:"yellow_cards"`
	RedCards     int       `db:"red_cards"`
	Saves        int       `db:"saves"`
	Penalties    int       `db:"penalties"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func (r matchweekPointsRow) toDomain() scoring.MatchweekPoints {
	return scoring.MatchweekPoints{
		UserTeamID:   r.UserTeamID,
		MatchweekID:  r.MatchweekID,
		Points:       r.Points,
		Goals:        r.Goals,
		Assists:      r.Assists,
		CleanSheets:  r.CleanSheets,
		YellowCards:  r.YellowCards,
		RedCards:     r.RedCards,
		Saves:        r.Saves,
		Penalties:    r.Penalties,
		CalculatedAt: r.CalculatedAt,
	}
}

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) Upsert(ctx context.Context, p scoring.MatchweekPoints) error {
	const query = `
INSERT INTO user_team_matchweek_points (
    user_team_id, matchweek_id, points, goals, assists, clean_sheets,
    yellow_cards, red_cards, saves, penalties, calculated_at
) VALUES (
    :user_team_id, :matchweek_id, :points, :goals, :assists, :clean_sheets,
    :yellow_cards, :red_cards, :saves, :penalties, :calculated_at
)
ON CONFLICT (user_team_id, matchweek_id)
DO UPDATE SET
    points = EXCLUDED.points,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    clean_sheets = EXCLUDED.clean_sheets,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    saves = EXCLUDED.saves,
    penalties = EXCLUDED.penalties,
    calculated_at = EXCLUDED.calculated_at`

	args := map[string]any{
		"user_team_id":  p.UserTeamID,
		"matchweek_id":  p.MatchweekID,
		"points":        p.Points,
		"goals":         p.Goals,
		"assists":       p.Assists,
		"clean_sheets":  p.CleanSheets,
		"yellow_cards":  p.YellowCards,
		"red_cards":     p.RedCards,
		"saves":         p.Saves,
		"penalties":     p.Penalties,
		"calculated_at": p.CalculatedAt,
	}
	upsertSQL, upsertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind upsert matchweek points query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)

	if _, err := r.db.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
		return fmt.Errorf("upsert matchweek points: %w", err)
	}
	return nil
}

func (r *PointsRepository) ListByUserTeam(ctx context.Context, userTeamID int64) ([]scoring.MatchweekPoints, error) {
	const query = `
SELECT user_team_id, matchweek_id, points, goals, assists, clean_sheets,
       yellow_cards, red_cards, saves, penalties, calculated_at
FROM user_team_matchweek_points
WHERE user_team_id = $1
ORDER BY matchweek_id`

	var rows []matchweekPointsRow
	if err := r.db.SelectContext(ctx, &rows, query, userTeamID); err != nil {
		return nil, fmt.Errorf("list user team points: %w", err)
	}

	out := make([]scoring.MatchweekPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PointsRepository) ListByMatchweek(ctx context.Context, matchweekID int64) ([]scoring.MatchweekPoints, error) {
	const query = `
SELECT user_team_id, matchweek_id, points, goals, assists, clean_sheets,
       yellow_cards, red_cards, saves, penalties, calculated_at
FROM user_team_matchweek_points
WHERE matchweek_id = $1
ORDER BY points DESC, user_team_id`

	var rows []matchweekPointsRow
	if err := r.db.SelectContext(ctx, &rows, query, matchweekID); err != nil {
		return nil, fmt.Errorf("list matchweek points: %w", err)
	}

	out := make([]scoring.MatchweekPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
