package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/domain/user"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
)

// CreateUserTeamInput is the incoming payload for creating a user team.
type CreateUserTeamInput struct {
	Name string
}

// UpdateUserTeamInput carries optional user team field updates. TotalPoints
// and Locked may only be set by admins.
type UpdateUserTeamInput struct {
	Name        *string
	TotalPoints *int
	Locked      *bool
}

// UserTeamDetails is a user team joined with its members and rule stats.
type UserTeamDetails struct {
	Team    roster.UserTeam
	Members []roster.MemberInfo
	Stats   roster.CompositionStats
}

type RosterService struct {
	rosterRepo           roster.Repository
	playerRepo           player.Repository
	teamRepo             team.Repository
	matchweeks           *MatchweekService
	rules                roster.Rules
	lockRequiresSnapshot bool
	logger               *logging.Logger
	now                  func() time.Time
}

func NewRosterService(
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	matchweeks *MatchweekService,
	rules roster.Rules,
	lockRequiresSnapshot bool,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		rosterRepo:           rosterRepo,
		playerRepo:           playerRepo,
		teamRepo:             teamRepo,
		matchweeks:           matchweeks,
		rules:                rules,
		lockRequiresSnapshot: lockRequiresSnapshot,
		logger:               logger,
		now:                  time.Now,
	}
}

func (s *RosterService) CreateUserTeam(ctx context.Context, principal user.Principal, input CreateUserTeamInput) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.CreateUserTeam")
	defer span.End()

	hasTeam, err := s.rosterRepo.UserHasTeam(ctx, principal.UserID)
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("check user team: %w", err)
	}
	if hasTeam {
		return roster.UserTeam{}, fmt.Errorf("%w: user already has a team", ErrConflict)
	}

	team := roster.UserTeam{
		UserID:    principal.UserID,
		Name:      strings.TrimSpace(input.Name),
		CreatedAt: s.now().UTC(),
	}
	if err := team.Validate(); err != nil {
		return roster.UserTeam{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	created, err := s.rosterRepo.Create(ctx, team)
	if errors.Is(err, roster.ErrUserTeamExists) {
		return roster.UserTeam{}, fmt.Errorf("%w: user already has a team", ErrConflict)
	}
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("create user team: %w", err)
	}

	s.logger.InfoContext(ctx, "user team created", "user_team_id", created.ID, "user_id", principal.UserID)
	return created, nil
}

func (s *RosterService) GetUserTeam(ctx context.Context, principal user.Principal, id int64) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetUserTeam")
	defer span.End()

	return s.authorizedTeam(ctx, principal, id)
}

func (s *RosterService) GetUserTeamDetails(ctx context.Context, principal user.Principal, id int64) (UserTeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetUserTeamDetails")
	defer span.End()

	team, err := s.authorizedTeam(ctx, principal, id)
	if err != nil {
		return UserTeamDetails{}, err
	}

	members, err := s.rosterRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return UserTeamDetails{}, fmt.Errorf("list roster members: %w", err)
	}

	return UserTeamDetails{
		Team:    team,
		Members: members,
		Stats:   roster.ComputeCompositionStats(members, s.rules),
	}, nil
}

func (s *RosterService) GetUserTeamByUserID(ctx context.Context, principal user.Principal, userID int64) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetUserTeamByUserID")
	defer span.End()

	if !principal.CanAccess(userID) {
		return roster.UserTeam{}, fmt.Errorf("%w: cannot access another user's team", ErrForbidden)
	}

	team, found, err := s.rosterRepo.GetByUserID(ctx, userID)
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return roster.UserTeam{}, fmt.Errorf("%w: user %d has no team", ErrNotFound, userID)
	}
	return team, nil
}

func (s *RosterService) MyTeam(ctx context.Context, principal user.Principal) (roster.UserTeam, error) {
	return s.GetUserTeamByUserID(ctx, principal, principal.UserID)
}

func (s *RosterService) MyTeamDetails(ctx context.Context, principal user.Principal) (UserTeamDetails, error) {
	team, err := s.MyTeam(ctx, principal)
	if err != nil {
		return UserTeamDetails{}, err
	}
	return s.GetUserTeamDetails(ctx, principal, team.ID)
}

func (s *RosterService) HasTeam(ctx context.Context, userID int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.HasTeam")
	defer span.End()

	hasTeam, err := s.rosterRepo.UserHasTeam(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check user team: %w", err)
	}
	return hasTeam, nil
}

func (s *RosterService) UpdateUserTeam(ctx context.Context, principal user.Principal, id int64, input UpdateUserTeamInput) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UpdateUserTeam")
	defer span.End()

	team, err := s.authorizedTeam(ctx, principal, id)
	if err != nil {
		return roster.UserTeam{}, err
	}

	if (input.TotalPoints != nil || input.Locked != nil) && !principal.IsAdmin() {
		return roster.UserTeam{}, fmt.Errorf("%w: only admins may change points or lock state", ErrForbidden)
	}

	if input.Name != nil {
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.TotalPoints != nil {
		team.TotalPoints = *input.TotalPoints
	}
	if input.Locked != nil {
		team.Locked = *input.Locked
	}
	if err := team.Validate(); err != nil {
		return roster.UserTeam{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	team.UpdatedAt = &now
	if err := s.rosterRepo.Update(ctx, team); err != nil {
		return roster.UserTeam{}, fmt.Errorf("update user team: %w", err)
	}
	return team, nil
}

func (s *RosterService) DeleteUserTeam(ctx context.Context, principal user.Principal, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.DeleteUserTeam")
	defer span.End()

	if _, err := s.authorizedTeam(ctx, principal, id); err != nil {
		return err
	}
	if err := s.rosterRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user team: %w", err)
	}

	s.logger.InfoContext(ctx, "user team deleted", "user_team_id", id, "user_id", principal.UserID)
	return nil
}

// AddPlayer admits a pool player onto the roster after the ownership, lock,
// deadline, and composition gates all pass, in that order.
func (s *RosterService) AddPlayer(ctx context.Context, principal user.Principal, userTeamID, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.AddPlayer")
	defer span.End()

	team, err := s.mutableTeam(ctx, principal, userTeamID)
	if err != nil {
		return err
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: player id %d", ErrNotFound, playerID)
	}

	sourceTeam, found, err := s.teamRepo.GetByID(ctx, p.TeamID)
	if err != nil {
		return fmt.Errorf("get source team: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: team id %d", ErrNotFound, p.TeamID)
	}

	members, err := s.rosterRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("list roster members: %w", err)
	}

	candidate := roster.MemberInfo{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Position:   p.Position,
		TeamID:     sourceTeam.ID,
		TeamName:   sourceTeam.Name,
	}
	if result := roster.ValidateAddition(members, candidate, s.rules); !result.Valid {
		return newValidationError(result.Violations)
	}

	err = s.rosterRepo.AddMember(ctx, roster.Member{
		UserTeamID: team.ID,
		PlayerID:   p.ID,
		AddedAt:    s.now().UTC(),
	})
	if errors.Is(err, roster.ErrMemberExists) {
		return fmt.Errorf("%w: player is already in the roster", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("add roster member: %w", err)
	}

	s.logger.InfoContext(ctx, "player added to roster",
		"user_team_id", team.ID,
		"player_id", p.ID,
		"position", string(p.Position),
	)
	return nil
}

func (s *RosterService) RemovePlayer(ctx context.Context, principal user.Principal, userTeamID, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RemovePlayer")
	defer span.End()

	team, err := s.mutableTeam(ctx, principal, userTeamID)
	if err != nil {
		return err
	}

	isMember, err := s.rosterRepo.HasMember(ctx, team.ID, playerID)
	if err != nil {
		return fmt.Errorf("check roster member: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: player %d is not in the roster", ErrNotFound, playerID)
	}

	if err := s.rosterRepo.RemoveMember(ctx, team.ID, playerID); err != nil {
		return fmt.Errorf("remove roster member: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed from roster", "user_team_id", team.ID, "player_id", playerID)
	return nil
}

// LockTeam finalizes the roster for the current matchweek. A full rule check
// runs first, then a snapshot is taken when a matchweek is open. Snapshot
// failure downgrades to a warning unless lock-requires-snapshot is set.
func (s *RosterService) LockTeam(ctx context.Context, principal user.Principal, userTeamID int64) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.LockTeam")
	defer span.End()

	team, err := s.authorizedTeam(ctx, principal, userTeamID)
	if err != nil {
		return roster.UserTeam{}, err
	}
	if team.Locked {
		return roster.UserTeam{}, fmt.Errorf("%w: team is already locked", ErrConflict)
	}

	members, err := s.rosterRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("list roster members: %w", err)
	}
	if result := roster.ValidateForLock(members, s.rules); !result.Valid {
		return roster.UserTeam{}, newValidationError(result.Violations)
	}

	current, ok, err := s.matchweeks.Current(ctx)
	if err != nil {
		return roster.UserTeam{}, err
	}
	if ok {
		if _, err := s.matchweeks.CreateSnapshot(ctx, team.ID, current.ID); err != nil {
			if s.lockRequiresSnapshot {
				return roster.UserTeam{}, fmt.Errorf("create lock snapshot: %w", err)
			}
			s.logger.WarnContext(ctx, "lock snapshot failed, locking anyway",
				"user_team_id", team.ID,
				"matchweek_id", current.ID,
				"error", err,
			)
		}
	}

	team.Locked = true
	now := s.now().UTC()
	team.UpdatedAt = &now
	if err := s.rosterRepo.Update(ctx, team); err != nil {
		return roster.UserTeam{}, fmt.Errorf("update user team: %w", err)
	}

	s.logger.InfoContext(ctx, "user team locked", "user_team_id", team.ID)
	return team, nil
}

// UnlockTeam reopens a locked roster. Admin only.
func (s *RosterService) UnlockTeam(ctx context.Context, principal user.Principal, userTeamID int64) (roster.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UnlockTeam")
	defer span.End()

	if !principal.IsAdmin() {
		return roster.UserTeam{}, fmt.Errorf("%w: only admins may unlock teams", ErrForbidden)
	}

	team, found, err := s.rosterRepo.GetByID(ctx, userTeamID)
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return roster.UserTeam{}, fmt.Errorf("%w: user team id %d", ErrNotFound, userTeamID)
	}
	if !team.Locked {
		return roster.UserTeam{}, fmt.Errorf("%w: team is not locked", ErrConflict)
	}

	team.Locked = false
	now := s.now().UTC()
	team.UpdatedAt = &now
	if err := s.rosterRepo.Update(ctx, team); err != nil {
		return roster.UserTeam{}, fmt.Errorf("update user team: %w", err)
	}

	s.logger.InfoContext(ctx, "user team unlocked", "user_team_id", team.ID, "admin_id", principal.UserID)
	return team, nil
}

func (s *RosterService) GetCompositionStats(ctx context.Context, principal user.Principal, userTeamID int64) (roster.CompositionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetCompositionStats")
	defer span.End()

	team, err := s.authorizedTeam(ctx, principal, userTeamID)
	if err != nil {
		return roster.CompositionStats{}, err
	}

	members, err := s.rosterRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return roster.CompositionStats{}, fmt.Errorf("list roster members: %w", err)
	}
	return roster.ComputeCompositionStats(members, s.rules), nil
}

// authorizedTeam loads the team and rejects callers that do not own it.
func (s *RosterService) authorizedTeam(ctx context.Context, principal user.Principal, id int64) (roster.UserTeam, error) {
	team, found, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		return roster.UserTeam{}, fmt.Errorf("get user team: %w", err)
	}
	if !found {
		return roster.UserTeam{}, fmt.Errorf("%w: user team id %d", ErrNotFound, id)
	}
	if !principal.CanAccess(team.UserID) {
		return roster.UserTeam{}, fmt.Errorf("%w: cannot access another user's team", ErrForbidden)
	}
	return team, nil
}

// mutableTeam enforces the lock and deadline gates shared by add and remove.
func (s *RosterService) mutableTeam(ctx context.Context, principal user.Principal, id int64) (roster.UserTeam, error) {
	team, err := s.authorizedTeam(ctx, principal, id)
	if err != nil {
		return roster.UserTeam{}, err
	}
	if team.Locked {
		return roster.UserTeam{}, fmt.Errorf("%w: team is locked", ErrConflict)
	}

	canModify, err := s.matchweeks.CanModifyTeams(ctx)
	if err != nil {
		return roster.UserTeam{}, err
	}
	if !canModify {
		return roster.UserTeam{}, fmt.Errorf("%w: matchweek deadline has passed", ErrConflict)
	}
	return team, nil
}
