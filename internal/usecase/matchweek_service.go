package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

// CreateMatchweekInput is the incoming payload for creating a matchweek.
type CreateMatchweekInput struct {
	WeekNumber int
	Deadline   time.Time
	Status     matchweek.Status
}

// UpdateMatchweekInput carries optional matchweek field updates.
type UpdateMatchweekInput struct {
	Deadline *time.Time
	Status   *matchweek.Status
}

// MatchweekRecalculator recomputes scoring output for one matchweek.
type MatchweekRecalculator interface {
	RecalculateMatchweek(ctx context.Context, matchweekID int64) error
}

type MatchweekService struct {
	matchweekRepo matchweek.Repository
	rosterRepo    roster.Repository
	snapshotRepo  scoring.SnapshotRepository
	recalculator  MatchweekRecalculator
	logger        *logging.Logger
	now           func() time.Time
}

func NewMatchweekService(
	matchweekRepo matchweek.Repository,
	rosterRepo roster.Repository,
	snapshotRepo scoring.SnapshotRepository,
	recalculator MatchweekRecalculator,
	logger *logging.Logger,
) *MatchweekService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchweekService{
		matchweekRepo: matchweekRepo,
		rosterRepo:    rosterRepo,
		snapshotRepo:  snapshotRepo,
		recalculator:  recalculator,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *MatchweekService) List(ctx context.Context) ([]matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.List")
	defer span.End()

	weeks, err := s.matchweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchweeks: %w", err)
	}
	return weeks, nil
}

func (s *MatchweekService) GetByID(ctx context.Context, id int64) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.GetByID")
	defer span.End()

	mw, found, err := s.matchweekRepo.GetByID(ctx, id)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("get matchweek: %w", err)
	}
	if !found {
		return matchweek.Matchweek{}, fmt.Errorf("%w: matchweek id %d", ErrNotFound, id)
	}
	return mw, nil
}

// Current returns the matchweek currently open for selection, if any.
func (s *MatchweekService) Current(ctx context.Context) (matchweek.Matchweek, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.Current")
	defer span.End()

	weeks, err := s.matchweekRepo.List(ctx)
	if err != nil {
		return matchweek.Matchweek{}, false, fmt.Errorf("list matchweeks: %w", err)
	}

	mw, ok := matchweek.Current(weeks, s.now().UTC())
	return mw, ok, nil
}

// CanModifyTeams reports whether roster mutation is open right now. With no
// current matchweek there is no deadline to enforce, so mutation is allowed.
func (s *MatchweekService) CanModifyTeams(ctx context.Context) (bool, error) {
	mw, ok, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return mw.CanModify(s.now().UTC()), nil
}

func (s *MatchweekService) Create(ctx context.Context, input CreateMatchweekInput) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.Create")
	defer span.End()

	if input.Status == "" {
		input.Status = matchweek.StatusUpcoming
	}

	mw := matchweek.Matchweek{
		WeekNumber: input.WeekNumber,
		Deadline:   input.Deadline.UTC(),
		Status:     input.Status,
		CreatedAt:  s.now().UTC(),
	}
	if err := mw.Validate(); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	_, exists, err := s.matchweekRepo.GetByWeekNumber(ctx, mw.WeekNumber)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("check week number: %w", err)
	}
	if exists {
		return matchweek.Matchweek{}, fmt.Errorf("%w: week number %d already exists", ErrConflict, mw.WeekNumber)
	}

	created, err := s.matchweekRepo.Create(ctx, mw)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("create matchweek: %w", err)
	}

	s.logger.InfoContext(ctx, "matchweek created", "matchweek_id", created.ID, "week_number", created.WeekNumber)
	return created, nil
}

func (s *MatchweekService) Update(ctx context.Context, id int64, input UpdateMatchweekInput) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.Update")
	defer span.End()

	mw, err := s.GetByID(ctx, id)
	if err != nil {
		return matchweek.Matchweek{}, err
	}

	if input.Deadline != nil {
		mw.Deadline = input.Deadline.UTC()
	}
	if input.Status != nil {
		mw.Status = *input.Status
	}
	if err := mw.Validate(); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	mw.UpdatedAt = &now
	if err := s.matchweekRepo.Update(ctx, mw); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("update matchweek: %w", err)
	}
	return mw, nil
}

func (s *MatchweekService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.matchweekRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete matchweek: %w", err)
	}
	return nil
}

// CreateSnapshot freezes the roster of one user team for a matchweek. It is
// idempotent: an existing snapshot for the pair is returned unchanged.
func (s *MatchweekService) CreateSnapshot(ctx context.Context, userTeamID, matchweekID int64) (scoring.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.CreateSnapshot")
	defer span.End()

	existing, found, err := s.snapshotRepo.Get(ctx, userTeamID, matchweekID)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	if found {
		return existing, nil
	}

	team, found, err := s.rosterRepo.GetByID(ctx, userTeamID)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return scoring.Snapshot{}, fmt.Errorf("%w: user team id %d", ErrNotFound, userTeamID)
	}

	if _, err := s.GetByID(ctx, matchweekID); err != nil {
		return scoring.Snapshot{}, err
	}

	members, err := s.rosterRepo.ListMembers(ctx, userTeamID)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("list roster members: %w", err)
	}

	players := make([]scoring.SnapshotPlayer, 0, len(members))
	for _, m := range members {
		players = append(players, scoring.SnapshotPlayer{
			PlayerID:   m.PlayerID,
			PlayerName: m.PlayerName,
			Position:   m.Position,
			TeamName:   m.TeamName,
			AddedAt:    m.AddedAt,
		})
	}

	snapshot := scoring.Snapshot{
		UserTeamID:  userTeamID,
		MatchweekID: matchweekID,
		TeamName:    team.Name,
		SnapshotAt:  s.now().UTC(),
		Players:     players,
	}

	created, err := s.snapshotRepo.Create(ctx, snapshot)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "roster snapshot created",
		"user_team_id", userTeamID,
		"matchweek_id", matchweekID,
		"players", len(players),
	)
	return created, nil
}

// Complete closes a matchweek: it snapshots every locked team that is still
// missing one, marks the week completed, and recalculates its scoring.
func (s *MatchweekService) Complete(ctx context.Context, matchweekID int64) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.Complete")
	defer span.End()

	mw, err := s.GetByID(ctx, matchweekID)
	if err != nil {
		return matchweek.Matchweek{}, err
	}
	if mw.Status == matchweek.StatusCompleted {
		return matchweek.Matchweek{}, fmt.Errorf("%w: matchweek %d is already completed", ErrConflict, mw.WeekNumber)
	}

	teams, err := s.rosterRepo.List(ctx)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("list user teams: %w", err)
	}

	p := pool.New().WithErrors().WithContext(ctx)
	for _, team := range teams {
		if !team.Locked {
			continue
		}
		teamID := team.ID
		p.Go(func(ctx context.Context) error {
			if _, err := s.CreateSnapshot(ctx, teamID, matchweekID); err != nil {
				return fmt.Errorf("snapshot user team %d: %w", teamID, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("snapshot locked teams: %w", err)
	}

	mw.Status = matchweek.StatusCompleted
	now := s.now().UTC()
	mw.UpdatedAt = &now
	if err := s.matchweekRepo.Update(ctx, mw); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("update matchweek: %w", err)
	}

	if s.recalculator != nil {
		if err := s.recalculator.RecalculateMatchweek(ctx, matchweekID); err != nil {
			s.logger.ErrorContext(ctx, "matchweek recalculation failed", "matchweek_id", matchweekID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "matchweek completed", "matchweek_id", matchweekID, "week_number", mw.WeekNumber)
	return mw, nil
}

func (s *MatchweekService) ListSnapshots(ctx context.Context, matchweekID int64) ([]scoring.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.ListSnapshots")
	defer span.End()

	if _, err := s.GetByID(ctx, matchweekID); err != nil {
		return nil, err
	}

	snaps, err := s.snapshotRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

func (s *MatchweekService) ListUserTeamSnapshots(ctx context.Context, userTeamID int64) ([]scoring.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchweekService.ListUserTeamSnapshots")
	defer span.End()

	_, found, err := s.rosterRepo.GetByID(ctx, userTeamID)
	if err != nil {
		return nil, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: user team id %d", ErrNotFound, userTeamID)
	}

	snaps, err := s.snapshotRepo.ListByUserTeam(ctx, userTeamID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}
