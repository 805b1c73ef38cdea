package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

// UpsertTeamInput is the incoming payload for creating or updating a pool team.
type UpsertTeamInput struct {
	Name    string
	LogoURL string
}

type TeamService struct {
	teamRepo team.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamService(teamRepo team.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetByID(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetByID")
	defer span.End()

	t, found, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team id %d", ErrNotFound, id)
	}
	return t, nil
}

func (s *TeamService) Create(ctx context.Context, input UpsertTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Create")
	defer span.End()

	t := team.Team{
		Name:      strings.TrimSpace(input.Name),
		LogoURL:   strings.TrimSpace(input.LogoURL),
		CreatedAt: s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	_, exists, err := s.teamRepo.GetByName(ctx, t.Name)
	if err != nil {
		return team.Team{}, fmt.Errorf("check team name: %w", err)
	}
	if exists {
		return team.Team{}, fmt.Errorf("%w: team name %q already exists", ErrConflict, t.Name)
	}

	created, err := s.teamRepo.Create(ctx, t)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TeamService) Update(ctx context.Context, id int64, input UpsertTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Update")
	defer span.End()

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != t.Name {
		_, exists, err := s.teamRepo.GetByName(ctx, name)
		if err != nil {
			return team.Team{}, fmt.Errorf("check team name: %w", err)
		}
		if exists {
			return team.Team{}, fmt.Errorf("%w: team name %q already exists", ErrConflict, name)
		}
		t.Name = name
	}
	if logo := strings.TrimSpace(input.LogoURL); logo != "" {
		t.LogoURL = logo
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	t.UpdatedAt = &now
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

func (s *TeamService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}
