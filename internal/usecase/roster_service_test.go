package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/domain/user"
	"github.com/karimzakaria/fantasy-backend/internal/infrastructure/repository/memory"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	teamRepo      *memory.TeamRepository
	playerRepo    *memory.PlayerRepository
	matchweekRepo *memory.MatchweekRepository
	fixtureRepo   *memory.FixtureRepository
	rosterRepo    *memory.RosterRepository
	eventRepo     *memory.EventRepository
	snapshotRepo  *memory.SnapshotRepository
	pointsRepo    *memory.PointsRepository

	scoringSvc   *ScoringService
	matchweekSvc *MatchweekService
	rosterSvc    *RosterService

	playerIDs map[string]int64
}

// newTestEnv wires the full service stack against memory repositories and
// seeds a pool of six teams with one player per position each.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		teamRepo:      memory.NewTeamRepository(),
		playerRepo:    memory.NewPlayerRepository(),
		matchweekRepo: memory.NewMatchweekRepository(),
		fixtureRepo:   memory.NewFixtureRepository(),
		snapshotRepo:  memory.NewSnapshotRepository(),
		pointsRepo:    memory.NewPointsRepository(),
		playerIDs:     make(map[string]int64),
	}
	env.rosterRepo = memory.NewRosterRepository(env.playerRepo, env.teamRepo)
	env.eventRepo = memory.NewEventRepository(env.fixtureRepo)

	logger := logging.NewNop()

	env.scoringSvc = NewScoringService(
		env.eventRepo, env.snapshotRepo, env.pointsRepo,
		env.rosterRepo, env.fixtureRepo, env.playerRepo,
		scoring.DefaultPointValues(), 2, logger,
	)
	env.scoringSvc.now = func() time.Time { return testNow }

	env.matchweekSvc = NewMatchweekService(
		env.matchweekRepo, env.rosterRepo, env.snapshotRepo, env.scoringSvc, logger,
	)
	env.matchweekSvc.now = func() time.Time { return testNow }

	env.rosterSvc = NewRosterService(
		env.rosterRepo, env.playerRepo, env.teamRepo, env.matchweekSvc,
		roster.DefaultRules(), false, logger,
	)
	env.rosterSvc.now = func() time.Time { return testNow }

	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	}
	clubs := []string{"Arsenal", "Chelsea", "Liverpool", "Everton", "Fulham", "Brentford"}
	for _, club := range clubs {
		clubTeam, err := env.teamRepo.Create(ctx, team.Team{Name: club, CreatedAt: testNow})
		if err != nil {
			t.Fatalf("seed team %s: %v", club, err)
		}
		for _, pos := range positions {
			name := club + " " + string(pos)
			p, err := env.playerRepo.Create(ctx, player.Player{
				TeamID:    clubTeam.ID,
				Name:      name,
				Position:  pos,
				CreatedAt: testNow,
			})
			if err != nil {
				t.Fatalf("seed player %s: %v", name, err)
			}
			env.playerIDs[name] = p.ID
		}
	}

	return env
}

func (env *testEnv) playerID(t *testing.T, club string, pos player.Position) int64 {
	t.Helper()
	id, ok := env.playerIDs[club+" "+string(pos)]
	if !ok {
		t.Fatalf("no seeded player for %s %s", club, pos)
	}
	return id
}

func (env *testEnv) openMatchweek(t *testing.T, weekNumber int, deadline time.Time) matchweek.Matchweek {
	t.Helper()
	mw, err := env.matchweekSvc.Create(context.Background(), CreateMatchweekInput{
		WeekNumber: weekNumber,
		Deadline:   deadline,
		Status:     matchweek.StatusUpcoming,
	})
	if err != nil {
		t.Fatalf("create matchweek %d: %v", weekNumber, err)
	}
	return mw
}

func (env *testEnv) createTeamWith(t *testing.T, owner user.Principal, name string, picks [][2]string) roster.UserTeam {
	t.Helper()
	ctx := context.Background()

	created, err := env.rosterSvc.CreateUserTeam(ctx, owner, CreateUserTeamInput{Name: name})
	if err != nil {
		t.Fatalf("create user team: %v", err)
	}
	for _, pick := range picks {
		id := env.playerID(t, pick[0], player.Position(pick[1]))
		if err := env.rosterSvc.AddPlayer(ctx, owner, created.ID, id); err != nil {
			t.Fatalf("add %s %s: %v", pick[0], pick[1], err)
		}
	}
	return created
}

func fullPicks() [][2]string {
	return [][2]string{
		{"Arsenal", "GK"},
		{"Chelsea", "DEF"},
		{"Liverpool", "MID"},
		{"Everton", "FWD"},
	}
}

var (
	alice = user.Principal{UserID: 1, Email: "alice@example.com", Role: user.RoleUser}
	bob   = user.Principal{UserID: 2, Email: "bob@example.com", Role: user.RoleUser}
	admin = user.Principal{UserID: 99, Email: "ops@example.com", Role: user.RoleAdmin}
)

func TestRosterService_CreateUserTeam_OnePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.rosterSvc.CreateUserTeam(ctx, alice, CreateUserTeamInput{Name: "Dream XI"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := env.rosterSvc.CreateUserTeam(ctx, alice, CreateUserTeamInput{Name: "Second Try"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for second team, got %v", err)
	}
}

func TestRosterService_AddPlayer_RuleGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", [][2]string{
		{"Arsenal", "GK"},
		{"Chelsea", "DEF"},
	})

	// Second goalkeeper is rejected with the full violation list attached.
	err := env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Liverpool", player.PositionGoalkeeper))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for second goalkeeper, got %v", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) || len(vErr.Violations) == 0 {
		t.Fatalf("expected violations, got %v", err)
	}

	// A second player from an already used club is rejected.
	err = env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Chelsea", player.PositionMidfielder))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for duplicate source team, got %v", err)
	}

	// Re-adding a player already on the roster is rejected.
	err = env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Arsenal", player.PositionGoalkeeper))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for duplicate player, got %v", err)
	}

	// Filling the roster works, then a fifth player bounces.
	if err := env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Liverpool", player.PositionMidfielder)); err != nil {
		t.Fatalf("third player: %v", err)
	}
	if err := env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Everton", player.PositionForward)); err != nil {
		t.Fatalf("fourth player: %v", err)
	}
	err = env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Fulham", player.PositionForward))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for fifth player, got %v", err)
	}
}

func TestRosterService_AddPlayer_OwnershipAndLockGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	if err := env.rosterSvc.AddPlayer(ctx, bob, teamRec.ID, env.playerID(t, "Fulham", player.PositionForward)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for foreign team, got %v", err)
	}

	if _, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := env.rosterSvc.RemovePlayer(ctx, alice, teamRec.ID, env.playerID(t, "Arsenal", player.PositionGoalkeeper)); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict mutating locked team, got %v", err)
	}
}

func TestRosterService_AddPlayer_DeadlineGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", nil)

	// Deadline is still open: adds pass.
	env.openMatchweek(t, 1, testNow.Add(time.Hour))
	if err := env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Arsenal", player.PositionGoalkeeper)); err != nil {
		t.Fatalf("add before deadline: %v", err)
	}

	// Push the clock past the deadline; adds bounce.
	env.rosterSvc.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	env.matchweekSvc.now = env.rosterSvc.now
	err := env.rosterSvc.AddPlayer(ctx, alice, teamRec.ID, env.playerID(t, "Chelsea", player.PositionDefender))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict after deadline, got %v", err)
	}
}

func TestRosterService_LockTeam_RequiresValidRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks()[:3])

	_, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input locking incomplete roster, got %v", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRosterService_LockTeam_SnapshotsCurrentMatchweek(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mw := env.openMatchweek(t, 1, testNow.Add(time.Hour))
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	locked, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !locked.Locked {
		t.Fatalf("expected team locked")
	}

	snap, found, err := env.snapshotRepo.Get(ctx, teamRec.ID, mw.ID)
	if err != nil || !found {
		t.Fatalf("expected snapshot after lock, found=%v err=%v", found, err)
	}
	if len(snap.Players) != 4 {
		t.Fatalf("expected 4 snapshot players, got %d", len(snap.Players))
	}
	if snap.TeamName != "Dream XI" {
		t.Fatalf("expected denormalized team name, got %q", snap.TeamName)
	}

	if _, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict locking twice, got %v", err)
	}
}

func TestRosterService_LockTeam_NoCurrentMatchweek(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	locked, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID)
	if err != nil {
		t.Fatalf("lock without matchweek: %v", err)
	}
	if !locked.Locked {
		t.Fatalf("expected team locked")
	}

	snaps, err := env.snapshotRepo.ListByUserTeam(ctx, teamRec.ID)
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshot without a current matchweek, got %d", len(snaps))
	}
}

func TestRosterService_UnlockTeam_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks())

	if _, err := env.rosterSvc.LockTeam(ctx, alice, teamRec.ID); err != nil {
		t.Fatalf("lock: %v", err)
	}

	if _, err := env.rosterSvc.UnlockTeam(ctx, alice, teamRec.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin unlock, got %v", err)
	}

	unlocked, err := env.rosterSvc.UnlockTeam(ctx, admin, teamRec.ID)
	if err != nil {
		t.Fatalf("admin unlock: %v", err)
	}
	if unlocked.Locked {
		t.Fatalf("expected team unlocked")
	}

	if _, err := env.rosterSvc.UnlockTeam(ctx, admin, teamRec.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict unlocking unlocked team, got %v", err)
	}
}

func TestRosterService_UpdateUserTeam_AdminOnlyFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", nil)

	newName := "Still Dreaming"
	updated, err := env.rosterSvc.UpdateUserTeam(ctx, alice, teamRec.ID, UpdateUserTeamInput{Name: &newName})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected rename applied, got %q", updated.Name)
	}

	points := 42
	if _, err := env.rosterSvc.UpdateUserTeam(ctx, alice, teamRec.ID, UpdateUserTeamInput{TotalPoints: &points}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for owner setting points, got %v", err)
	}

	updated, err = env.rosterSvc.UpdateUserTeam(ctx, admin, teamRec.ID, UpdateUserTeamInput{TotalPoints: &points})
	if err != nil {
		t.Fatalf("admin points update: %v", err)
	}
	if updated.TotalPoints != 42 {
		t.Fatalf("expected points applied, got %d", updated.TotalPoints)
	}
}

func TestRosterService_GetCompositionStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamRec := env.createTeamWith(t, alice, "Dream XI", fullPicks()[:2])

	stats, err := env.rosterSvc.GetCompositionStats(ctx, alice, teamRec.ID)
	if err != nil {
		t.Fatalf("composition stats: %v", err)
	}
	if stats.PlayerCount != 2 || stats.GoalkeeperCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ValidForLock {
		t.Fatalf("incomplete roster must not be lockable")
	}

	if _, err := env.rosterSvc.GetCompositionStats(ctx, bob, teamRec.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for foreign stats read, got %v", err)
	}
}

func TestRosterService_MyTeam(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.rosterSvc.MyTeam(ctx, alice); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found before create, got %v", err)
	}

	created := env.createTeamWith(t, alice, "Dream XI", nil)
	mine, err := env.rosterSvc.MyTeam(ctx, alice)
	if err != nil {
		t.Fatalf("my team: %v", err)
	}
	if mine.ID != created.ID {
		t.Fatalf("expected own team %d, got %d", created.ID, mine.ID)
	}

	hasTeam, err := env.rosterSvc.HasTeam(ctx, alice.UserID)
	if err != nil || !hasTeam {
		t.Fatalf("expected has-team true, got %v err=%v", hasTeam, err)
	}
}
