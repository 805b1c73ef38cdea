package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

// CreateFixtureInput is the incoming payload for scheduling a fixture.
type CreateFixtureInput struct {
	MatchweekID int64
	HomeTeamID  int64
	AwayTeamID  int64
	KickoffAt   time.Time
}

// UpdateFixtureInput carries optional fixture field updates.
type UpdateFixtureInput struct {
	KickoffAt   *time.Time
	IsCompleted *bool
}

type FixtureService struct {
	fixtureRepo   fixture.Repository
	teamRepo      team.Repository
	matchweekRepo matchweek.Repository
	logger        *logging.Logger
	now           func() time.Time
}

func NewFixtureService(
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	matchweekRepo matchweek.Repository,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		fixtureRepo:   fixtureRepo,
		teamRepo:      teamRepo,
		matchweekRepo: matchweekRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *FixtureService) List(ctx context.Context) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.List")
	defer span.End()

	fixtures, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return fixtures, nil
}

func (s *FixtureService) ListByMatchweek(ctx context.Context, matchweekID int64) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.ListByMatchweek")
	defer span.End()

	if _, found, err := s.matchweekRepo.GetByID(ctx, matchweekID); err != nil {
		return nil, fmt.Errorf("get matchweek: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: matchweek id %d", ErrNotFound, matchweekID)
	}

	fixtures, err := s.fixtureRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by matchweek: %w", err)
	}
	return fixtures, nil
}

func (s *FixtureService) GetByID(ctx context.Context, id int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.GetByID")
	defer span.End()

	f, found, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !found {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id %d", ErrNotFound, id)
	}
	return f, nil
}

func (s *FixtureService) Create(ctx context.Context, input CreateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.Create")
	defer span.End()

	f := fixture.Fixture{
		MatchweekID: input.MatchweekID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		KickoffAt:   input.KickoffAt.UTC(),
		CreatedAt:   s.now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if _, found, err := s.matchweekRepo.GetByID(ctx, f.MatchweekID); err != nil {
		return fixture.Fixture{}, fmt.Errorf("get matchweek: %w", err)
	} else if !found {
		return fixture.Fixture{}, fmt.Errorf("%w: matchweek id %d", ErrNotFound, f.MatchweekID)
	}
	for _, teamID := range []int64{f.HomeTeamID, f.AwayTeamID} {
		if _, found, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return fixture.Fixture{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return fixture.Fixture{}, fmt.Errorf("%w: team id %d", ErrNotFound, teamID)
		}
	}

	created, err := s.fixtureRepo.Create(ctx, f)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture created",
		"fixture_id", created.ID,
		"matchweek_id", created.MatchweekID,
		"home_team_id", created.HomeTeamID,
		"away_team_id", created.AwayTeamID,
	)
	return created, nil
}

func (s *FixtureService) Update(ctx context.Context, id int64, input UpdateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.Update")
	defer span.End()

	f, err := s.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, err
	}

	if input.KickoffAt != nil {
		f.KickoffAt = input.KickoffAt.UTC()
	}
	if input.IsCompleted != nil {
		f.IsCompleted = *input.IsCompleted
	}
	if err := f.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	f.UpdatedAt = &now
	if err := s.fixtureRepo.Update(ctx, f); err != nil {
		return fixture.Fixture{}, fmt.Errorf("update fixture: %w", err)
	}
	return f, nil
}

func (s *FixtureService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.fixtureRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	return nil
}
