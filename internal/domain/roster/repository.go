package roster

import (
	"context"
	"errors"
)

// ErrMemberExists is returned by AddMember when the player is already on
// the roster, so races between the check and the insert surface cleanly.
var ErrMemberExists = errors.New("roster member already exists")

// ErrUserTeamExists is returned by Create when the user already owns a
// team, matching the unique user_id constraint in storage.
var ErrUserTeamExists = errors.New("user already has a team")

// Repository describes user team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]UserTeam, error)
	GetByID(ctx context.Context, id int64) (UserTeam, bool, error)
	GetByUserID(ctx context.Context, userID int64) (UserTeam, bool, error)
	UserHasTeam(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, t UserTeam) (UserTeam, error)
	Update(ctx context.Context, t UserTeam) error
	Delete(ctx context.Context, id int64) error

	ListMembers(ctx context.Context, userTeamID int64) ([]MemberInfo, error)
	HasMember(ctx context.Context, userTeamID, playerID int64) (bool, error)
	AddMember(ctx context.Context, m Member) error
	RemoveMember(ctx context.Context, userTeamID, playerID int64) error

	UpdateTotalPoints(ctx context.Context, userTeamID int64, totalPoints int) error
}
