package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

// UpsertPlayerInput is the incoming payload for creating or updating a player.
type UpsertPlayerInput struct {
	TeamID   int64
	Name     string
	Position player.Position
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListByTeam")
	defer span.End()

	if _, found, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: team id %d", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return players, nil
}

func (s *PlayerService) GetByID(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetByID")
	defer span.End()

	p, found, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player id %d", ErrNotFound, id)
	}
	return p, nil
}

func (s *PlayerService) Create(ctx context.Context, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Create")
	defer span.End()

	p := player.Player{
		TeamID:    input.TeamID,
		Name:      strings.TrimSpace(input.Name),
		Position:  input.Position,
		CreatedAt: s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if _, found, err := s.teamRepo.GetByID(ctx, p.TeamID); err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	} else if !found {
		return player.Player{}, fmt.Errorf("%w: team id %d", ErrNotFound, p.TeamID)
	}

	created, err := s.playerRepo.Create(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", created.ID,
		"team_id", created.TeamID,
		"position", string(created.Position),
	)
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, id int64, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Update")
	defer span.End()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, err
	}

	if input.TeamID > 0 && input.TeamID != p.TeamID {
		if _, found, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
			return player.Player{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return player.Player{}, fmt.Errorf("%w: team id %d", ErrNotFound, input.TeamID)
		}
		p.TeamID = input.TeamID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		p.Name = name
	}
	if input.Position != "" {
		p.Position = input.Position
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	p.UpdatedAt = &now
	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}
