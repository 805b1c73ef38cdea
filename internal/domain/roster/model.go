package roster

import (
	"fmt"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
)

// UserTeam is one user's fantasy roster. Each user owns at most one.
type UserTeam struct {
	ID          int64
	UserID      int64
	Name        string
	TotalPoints int
	Locked      bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (t UserTeam) Validate() error {
	if t.UserID <= 0 {
		return fmt.Errorf("user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("user team name is required")
	}
	if len(t.Name) > 100 {
		return fmt.Errorf("user team name must be at most 100 characters")
	}

	return nil
}

// Member is the membership link between a user team and a pool player.
type Member struct {
	UserTeamID int64
	PlayerID   int64
	AddedAt    time.Time
}

// MemberInfo is a member joined with its player and source team details,
// which is what constraint checks and read endpoints need.
type MemberInfo struct {
	PlayerID   int64
	PlayerName string
	Position   player.Position
	TeamID     int64
	TeamName   string
	AddedAt    time.Time
}
