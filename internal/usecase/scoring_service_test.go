package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
)

func (env *testEnv) seedFixture(t *testing.T, matchweekID int64) fixture.Fixture {
	t.Helper()
	f, err := env.fixtureRepo.Create(context.Background(), fixture.Fixture{
		MatchweekID: matchweekID,
		HomeTeamID:  1,
		AwayTeamID:  2,
		KickoffAt:   testNow.Add(2 * time.Hour),
		CreatedAt:   testNow,
	})
	if err != nil {
		t.Fatalf("seed fixture: %v", err)
	}
	return f
}

func TestScoringService_RecordEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	fx := env.seedFixture(t, mw.ID)
	scorer := env.playerID(t, "Arsenal", player.PositionForward)

	minute := 57
	event, err := env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  scorer,
		Type:      scoring.EventGoal,
		Minute:    &minute,
	})
	if err != nil {
		t.Fatalf("record event: %v", err)
	}
	if event.Points != 5 {
		t.Fatalf("expected goal worth 5 points, got %d", event.Points)
	}

	_, err = env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  scorer,
		Type:      scoring.EventType("NUTMEG"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}

	_, err = env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: 404,
		PlayerID:  scorer,
		Type:      scoring.EventGoal,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown fixture, got %v", err)
	}

	_, err = env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  404,
		Type:      scoring.EventGoal,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown player, got %v", err)
	}
}

func TestScoringService_DeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	fx := env.seedFixture(t, mw.ID)

	event, err := env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  env.playerID(t, "Arsenal", player.PositionForward),
		Type:      scoring.EventAssist,
	})
	if err != nil {
		t.Fatalf("record event: %v", err)
	}

	if err := env.scoringSvc.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if err := env.scoringSvc.DeleteEvent(ctx, event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}
}

func TestScoringService_RecalculateMatchweek(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	fx := env.seedFixture(t, mw.ID)
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	if _, err := env.matchweekSvc.CreateSnapshot(ctx, teamRec.ID, mw.ID); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	scorer := env.playerID(t, "Everton", player.PositionForward)
	keeper := env.playerID(t, "Arsenal", player.PositionGoalkeeper)
	outsider := env.playerID(t, "Fulham", player.PositionForward)

	for _, ev := range []RecordEventInput{
		{FixtureID: fx.ID, PlayerID: scorer, Type: scoring.EventGoal},
		{FixtureID: fx.ID, PlayerID: scorer, Type: scoring.EventYellowCard},
		{FixtureID: fx.ID, PlayerID: keeper, Type: scoring.EventCleanSheet},
		{FixtureID: fx.ID, PlayerID: keeper, Type: scoring.EventSave},
		{FixtureID: fx.ID, PlayerID: outsider, Type: scoring.EventGoal},
	} {
		if _, err := env.scoringSvc.RecordEvent(ctx, ev); err != nil {
			t.Fatalf("record event: %v", err)
		}
	}

	if err := env.scoringSvc.RecalculateMatchweek(ctx, mw.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	rows, err := env.scoringSvc.GetUserTeamPoints(ctx, teamRec.ID)
	if err != nil {
		t.Fatalf("get points: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 breakdown row, got %d", len(rows))
	}
	// Goal 5 - yellow 1 + clean sheet 4 + save 1; the outsider's goal does
	// not count because they are not in the snapshot.
	if rows[0].Points != 9 {
		t.Fatalf("expected 9 points, got %d", rows[0].Points)
	}
	if rows[0].Goals != 1 || rows[0].CleanSheets != 1 || rows[0].Saves != 1 || rows[0].YellowCards != 1 {
		t.Fatalf("unexpected breakdown: %+v", rows[0])
	}

	updated, found, err := env.rosterRepo.GetByID(ctx, teamRec.ID)
	if err != nil || !found {
		t.Fatalf("reload team: found=%v err=%v", found, err)
	}
	if updated.TotalPoints != 9 {
		t.Fatalf("expected total points 9, got %d", updated.TotalPoints)
	}

	// Recalculation is idempotent: rerunning rewrites the same row.
	if err := env.scoringSvc.RecalculateMatchweek(ctx, mw.ID); err != nil {
		t.Fatalf("second recalculate: %v", err)
	}
	rows, err = env.scoringSvc.GetUserTeamPoints(ctx, teamRec.ID)
	if err != nil || len(rows) != 1 || rows[0].Points != 9 {
		t.Fatalf("expected stable breakdown after rerun, rows=%v err=%v", rows, err)
	}
}

func TestScoringService_RecalculateMatchweek_NoSnapshots(t *testing.T) {
	env := newTestEnv(t)
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))

	if err := env.scoringSvc.RecalculateMatchweek(context.Background(), mw.ID); err != nil {
		t.Fatalf("recalculate with no snapshots: %v", err)
	}
}

func TestScoringService_SnapshotShieldsScoresFromRosterDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	fx := env.seedFixture(t, mw.ID)
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	if _, err := env.matchweekSvc.CreateSnapshot(ctx, teamRec.ID, mw.ID); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	// Drop the striker from the live roster after the freeze.
	scorer := env.playerID(t, "Everton", player.PositionForward)
	if err := env.rosterSvc.RemovePlayer(ctx, alice, teamRec.ID, scorer); err != nil {
		t.Fatalf("remove player: %v", err)
	}

	if _, err := env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  scorer,
		Type:      scoring.EventGoal,
	}); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if err := env.scoringSvc.RecalculateMatchweek(ctx, mw.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	rows, err := env.scoringSvc.GetUserTeamPoints(ctx, teamRec.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected 1 breakdown row, got %d err=%v", len(rows), err)
	}
	if rows[0].Points != 5 {
		t.Fatalf("snapshot player still scores after drift, got %d points", rows[0].Points)
	}
}

func TestScoringService_ListEventsByFixture(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	fx := env.seedFixture(t, mw.ID)

	if _, err := env.scoringSvc.RecordEvent(ctx, RecordEventInput{
		FixtureID: fx.ID,
		PlayerID:  env.playerID(t, "Chelsea", player.PositionDefender),
		Type:      scoring.EventRedCard,
	}); err != nil {
		t.Fatalf("record event: %v", err)
	}

	events, err := env.scoringSvc.ListEventsByFixture(ctx, fx.ID)
	if err != nil || len(events) != 1 {
		t.Fatalf("expected 1 event, got %d err=%v", len(events), err)
	}

	if _, err := env.scoringSvc.ListEventsByFixture(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown fixture, got %v", err)
	}
}
