package scoring

import (
	"testing"
	"time"
)

func TestDefaultPointValues(t *testing.T) {
	values := DefaultPointValues()

	cases := []struct {
		eventType EventType
		want      int
	}{
		{EventGoal, 5},
		{EventAssist, 3},
		{EventCleanSheet, 4},
		{EventYellowCard, -1},
		{EventRedCard, -3},
		{EventSave, 1},
		{EventPenalty, 6},
	}
	for _, tc := range cases {
		got, err := values.For(tc.eventType)
		if err != nil {
			t.Fatalf("For(%s): %v", tc.eventType, err)
		}
		if got != tc.want {
			t.Fatalf("For(%s) = %d, want %d", tc.eventType, got, tc.want)
		}
	}

	if _, err := values.For(EventType("OWN_GOAL")); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}

func TestTallyEventsIgnoresPlayersOutsideSnapshot(t *testing.T) {
	snap := Snapshot{
		UserTeamID:  7,
		MatchweekID: 3,
		Players: []SnapshotPlayer{
			{PlayerID: 1, PlayerName: "Keeper"},
			{PlayerID: 2, PlayerName: "Striker"},
		},
	}
	events := []MatchEvent{
		{PlayerID: 2, Type: EventGoal, Points: 5},
		{PlayerID: 2, Type: EventAssist, Points: 3},
		{PlayerID: 1, Type: EventSave, Points: 1},
		{PlayerID: 99, Type: EventGoal, Points: 5},
	}

	breakdown := TallyEvents(snap, events)

	if breakdown.Points != 9 {
		t.Fatalf("expected 9 points, got %d", breakdown.Points)
	}
	if breakdown.Goals != 1 || breakdown.Assists != 1 || breakdown.Saves != 1 {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}
	if breakdown.UserTeamID != 7 || breakdown.MatchweekID != 3 {
		t.Fatalf("breakdown not attributed to snapshot: %+v", breakdown)
	}
}

func TestTallyEventsNegativePoints(t *testing.T) {
	snap := Snapshot{
		UserTeamID:  1,
		MatchweekID: 1,
		Players:     []SnapshotPlayer{{PlayerID: 5}},
	}
	events := []MatchEvent{
		{PlayerID: 5, Type: EventYellowCard, Points: -1},
		{PlayerID: 5, Type: EventRedCard, Points: -3},
	}

	breakdown := TallyEvents(snap, events)
	if breakdown.Points != -4 {
		t.Fatalf("expected -4 points, got %d", breakdown.Points)
	}
	if breakdown.YellowCards != 1 || breakdown.RedCards != 1 {
		t.Fatalf("unexpected card counters: %+v", breakdown)
	}
}

func TestTallyEventsUsesStoredEventPoints(t *testing.T) {
	snap := Snapshot{
		UserTeamID:  2,
		MatchweekID: 4,
		Players:     []SnapshotPlayer{{PlayerID: 8}},
	}
	// Recorded while goals were worth 10; a later tuning of the configured
	// point values must not change what this event is worth.
	events := []MatchEvent{
		{PlayerID: 8, Type: EventGoal, Points: 10},
	}

	breakdown := TallyEvents(snap, events)
	if breakdown.Points != 10 {
		t.Fatalf("expected stored 10 points to be tallied, got %d", breakdown.Points)
	}
	if breakdown.Goals != 1 {
		t.Fatalf("expected 1 goal in breakdown, got %d", breakdown.Goals)
	}
}

func TestMatchEventValidate(t *testing.T) {
	minute := 90
	ok := MatchEvent{FixtureID: 1, PlayerID: 2, Type: EventGoal, Minute: &minute}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid event: %v", err)
	}

	overtime := 140
	bad := MatchEvent{FixtureID: 1, PlayerID: 2, Type: EventGoal, Minute: &overtime, CreatedAt: time.Now()}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected minute range error")
	}

	unknown := MatchEvent{FixtureID: 1, PlayerID: 2, Type: EventType("TACKLE")}
	if err := unknown.Validate(); err == nil {
		t.Fatalf("expected invalid type error")
	}
}
