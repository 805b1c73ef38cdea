package scoring

import (
	"fmt"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
)

// EventType classifies a scorable match event.
type EventType string

const (
	EventGoal       EventType = "GOAL"
	EventAssist     EventType = "ASSIST"
	EventCleanSheet EventType = "CLEAN_SHEET"
	EventYellowCard EventType = "YELLOW_CARD"
	EventRedCard    EventType = "RED_CARD"
	EventSave       EventType = "SAVE"
	EventPenalty    EventType = "PENALTY"
)

var AllEventTypes = map[EventType]struct{}{
	EventGoal:       {},
	EventAssist:     {},
	EventCleanSheet: {},
	EventYellowCard: {},
	EventRedCard:    {},
	EventSave:       {},
	EventPenalty:    {},
}

// PointValues maps each event type to the points it awards.
type PointValues struct {
	Goal       int
	Assist     int
	CleanSheet int
	YellowCard int
	RedCard    int
	Save       int
	Penalty    int
}

func DefaultPointValues() PointValues {
	return PointValues{
		Goal:       5,
		Assist:     3,
		CleanSheet: 4,
		YellowCard: -1,
		RedCard:    -3,
		Save:       1,
		Penalty:    6,
	}
}

// For returns the point value configured for the given event type.
func (p PointValues) For(t EventType) (int, error) {
	switch t {
	case EventGoal:
		return p.Goal, nil
	case EventAssist:
		return p.Assist, nil
	case EventCleanSheet:
		return p.CleanSheet, nil
	case EventYellowCard:
		return p.YellowCard, nil
	case EventRedCard:
		return p.RedCard, nil
	case EventSave:
		return p.Save, nil
	case EventPenalty:
		return p.Penalty, nil
	default:
		return 0, fmt.Errorf("unknown event type: %s", t)
	}
}

// MatchEvent is one scorable occurrence attributed to a pool player.
type MatchEvent struct {
	ID        int64
	FixtureID int64
	PlayerID  int64
	Type      EventType
	Points    int
	Minute    *int
	CreatedAt time.Time
}

func (e MatchEvent) Validate() error {
	if e.FixtureID <= 0 {
		return fmt.Errorf("event fixture id is required")
	}
	if e.PlayerID <= 0 {
		return fmt.Errorf("event player id is required")
	}
	if _, ok := AllEventTypes[e.Type]; !ok {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Minute != nil && (*e.Minute < 0 || *e.Minute > 120) {
		return fmt.Errorf("event minute out of range")
	}

	return nil
}

// SnapshotPlayer is one roster member frozen inside a snapshot. Player and
// team names are denormalized so the record survives pool edits.
type SnapshotPlayer struct {
	PlayerID   int64
	PlayerName string
	Position   player.Position
	TeamName   string
	AddedAt    time.Time
}

// Snapshot freezes a user team's roster for one matchweek.
type Snapshot struct {
	ID          int64
	UserTeamID  int64
	MatchweekID int64
	TeamName    string
	SnapshotAt  time.Time
	Players     []SnapshotPlayer
}

// MatchweekPoints is the per-matchweek scoring breakdown for one user team.
type MatchweekPoints struct {
	UserTeamID   int64
	MatchweekID  int64
	Points       int
	Goals        int
	Assists      int
	CleanSheets  int
	YellowCards  int
	RedCards     int
	Saves        int
	Penalties    int
	CalculatedAt time.Time
}

// TallyEvents folds the events scored by the given snapshot players into a
// matchweek breakdown. Events for players outside the snapshot are ignored.
// Points come from the value stamped on each event at record time, so
// recalculating after a point-value change does not rewrite history.
func TallyEvents(snapshot Snapshot, events []MatchEvent) MatchweekPoints {
	inSnapshot := make(map[int64]struct{}, len(snapshot.Players))
	for _, p := range snapshot.Players {
		inSnapshot[p.PlayerID] = struct{}{}
	}

	breakdown := MatchweekPoints{
		UserTeamID:  snapshot.UserTeamID,
		MatchweekID: snapshot.MatchweekID,
	}

	for _, ev := range events {
		if _, ok := inSnapshot[ev.PlayerID]; !ok {
			continue
		}

		breakdown.Points += ev.Points

		switch ev.Type {
		case EventGoal:
			breakdown.Goals++
		case EventAssist:
			breakdown.Assists++
		case EventCleanSheet:
			breakdown.CleanSheets++
		case EventYellowCard:
			breakdown.YellowCards++
		case EventRedCard:
			breakdown.RedCards++
		case EventSave:
			breakdown.Saves++
		case EventPenalty:
			breakdown.Penalties++
		}
	}

	return breakdown
}
