package scoring

import "context"

// EventRepository describes match event persistence needs from use cases.
type EventRepository interface {
	Create(ctx context.Context, e MatchEvent) (MatchEvent, error)
	GetByID(ctx context.Context, id int64) (MatchEvent, bool, error)
	ListByFixture(ctx context.Context, fixtureID int64) ([]MatchEvent, error)
	ListByMatchweek(ctx context.Context, matchweekID int64) ([]MatchEvent, error)
	Delete(ctx context.Context, id int64) error
}

// SnapshotRepository describes snapshot persistence needs from use cases.
// Create must persist the snapshot row and its players atomically.
type SnapshotRepository interface {
	Create(ctx context.Context, s Snapshot) (Snapshot, error)
	Get(ctx context.Context, userTeamID, matchweekID int64) (Snapshot, bool, error)
	ListByMatchweek(ctx context.Context, matchweekID int64) ([]Snapshot, error)
	ListByUserTeam(ctx context.Context, userTeamID int64) ([]Snapshot, error)
}

// PointsRepository describes matchweek scoring breakdown persistence.
type PointsRepository interface {
	Upsert(ctx context.Context, p MatchweekPoints) error
	ListByUserTeam(ctx context.Context, userTeamID int64) ([]MatchweekPoints, error)
	ListByMatchweek(ctx context.Context, matchweekID int64) ([]MatchweekPoints, error)
}
