package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
	"github.com/karimzakaria/fantasy-backend/internal/platform/resilience"
)

const defaultScoringWorkers = 4

// RecordEventInput is the incoming payload for recording a match event.
type RecordEventInput struct {
	FixtureID int64
	PlayerID  int64
	Type      scoring.EventType
	Minute    *int
}

type ScoringService struct {
	eventRepo    scoring.EventRepository
	snapshotRepo scoring.SnapshotRepository
	pointsRepo   scoring.PointsRepository
	rosterRepo   roster.Repository
	fixtureRepo  fixture.Repository
	playerRepo   player.Repository
	points       scoring.PointValues
	workers      int
	flight       resilience.SingleFlight
	logger       *logging.Logger
	now          func() time.Time
}

func NewScoringService(
	eventRepo scoring.EventRepository,
	snapshotRepo scoring.SnapshotRepository,
	pointsRepo scoring.PointsRepository,
	rosterRepo roster.Repository,
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	points scoring.PointValues,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		eventRepo:    eventRepo,
		snapshotRepo: snapshotRepo,
		pointsRepo:   pointsRepo,
		rosterRepo:   rosterRepo,
		fixtureRepo:  fixtureRepo,
		playerRepo:   playerRepo,
		points:       points,
		workers:      workers,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordEvent validates and stores one match event, stamping the points it
// awards from the configured point values.
func (s *ScoringService) RecordEvent(ctx context.Context, input RecordEventInput) (scoring.MatchEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecordEvent")
	defer span.End()

	points, err := s.points.For(input.Type)
	if err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	fx, found, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("get fixture: %w", err)
	}
	if !found {
		return scoring.MatchEvent{}, fmt.Errorf("%w: fixture id %d", ErrNotFound, input.FixtureID)
	}

	if _, found, err = s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("get player: %w", err)
	} else if !found {
		return scoring.MatchEvent{}, fmt.Errorf("%w: player id %d", ErrNotFound, input.PlayerID)
	}

	event := scoring.MatchEvent{
		FixtureID: input.FixtureID,
		PlayerID:  input.PlayerID,
		Type:      input.Type,
		Points:    points,
		Minute:    input.Minute,
		CreatedAt: s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return scoring.MatchEvent{}, fmt.Errorf("create match event: %w", err)
	}

	s.logger.InfoContext(ctx, "match event recorded",
		"event_id", created.ID,
		"fixture_id", fx.ID,
		"player_id", created.PlayerID,
		"type", string(created.Type),
		"points", created.Points,
	)
	return created, nil
}

func (s *ScoringService) DeleteEvent(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.DeleteEvent")
	defer span.End()

	_, found, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get match event: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: match event id %d", ErrNotFound, id)
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete match event: %w", err)
	}
	return nil
}

func (s *ScoringService) ListEventsByFixture(ctx context.Context, fixtureID int64) ([]scoring.MatchEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ListEventsByFixture")
	defer span.End()

	_, found, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("get fixture: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: fixture id %d", ErrNotFound, fixtureID)
	}

	events, err := s.eventRepo.ListByFixture(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}
	return events, nil
}

// RecalculateMatchweek tallies every snapshot of the matchweek against its
// events and rewrites the per-team breakdowns and running totals. Concurrent
// calls for the same matchweek collapse into one run.
func (s *ScoringService) RecalculateMatchweek(ctx context.Context, matchweekID int64) error {
	key := fmt.Sprintf("scoring:recalc:%d", matchweekID)
	_, err, _ := s.flight.Do(key, func() (any, error) {
		return nil, s.recalculateMatchweek(ctx, matchweekID)
	})
	return err
}

func (s *ScoringService) recalculateMatchweek(ctx context.Context, matchweekID int64) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecalculateMatchweek")
	defer span.End()

	snapshots, err := s.snapshotRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		s.logger.InfoContext(ctx, "no snapshots to recalculate", "matchweek_id", matchweekID)
		return nil
	}

	events, err := s.eventRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return fmt.Errorf("list match events: %w", err)
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu         sync.Mutex
		workers    sync.WaitGroup
		breakdowns = make([]scoring.MatchweekPoints, 0, len(snapshots))
	)
	calculatedAt := s.now().UTC()

	for _, snap := range snapshots {
		snap := snap
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			breakdown := scoring.TallyEvents(snap, events)
			breakdown.CalculatedAt = calculatedAt

			mu.Lock()
			breakdowns = append(breakdowns, breakdown)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit tally to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, breakdown := range breakdowns {
		if err := s.pointsRepo.Upsert(ctx, breakdown); err != nil {
			return fmt.Errorf("upsert matchweek points: %w", err)
		}
		if err := s.refreshTotalPoints(ctx, breakdown.UserTeamID); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "matchweek recalculated",
		"matchweek_id", matchweekID,
		"snapshots", len(snapshots),
		"events", len(events),
	)
	return nil
}

func (s *ScoringService) refreshTotalPoints(ctx context.Context, userTeamID int64) error {
	rows, err := s.pointsRepo.ListByUserTeam(ctx, userTeamID)
	if err != nil {
		return fmt.Errorf("list user team points: %w", err)
	}

	total := 0
	for _, row := range rows {
		total += row.Points
	}

	if err := s.rosterRepo.UpdateTotalPoints(ctx, userTeamID, total); err != nil {
		return fmt.Errorf("update total points: %w", err)
	}
	return nil
}

func (s *ScoringService) GetUserTeamPoints(ctx context.Context, userTeamID int64) ([]scoring.MatchweekPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.GetUserTeamPoints")
	defer span.End()

	_, found, err := s.rosterRepo.GetByID(ctx, userTeamID)
	if err != nil {
		return nil, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: user team id %d", ErrNotFound, userTeamID)
	}

	rows, err := s.pointsRepo.ListByUserTeam(ctx, userTeamID)
	if err != nil {
		return nil, fmt.Errorf("list user team points: %w", err)
	}
	return rows, nil
}

func (s *ScoringService) ListPointsByMatchweek(ctx context.Context, matchweekID int64) ([]scoring.MatchweekPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ListPointsByMatchweek")
	defer span.End()

	rows, err := s.pointsRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("list matchweek points: %w", err)
	}
	return rows, nil
}
