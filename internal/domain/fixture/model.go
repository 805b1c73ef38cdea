package fixture

import (
	"fmt"
	"time"
)

// Fixture is a scheduled match between two pool teams inside a matchweek.
type Fixture struct {
	ID          int64
	MatchweekID int64
	HomeTeamID  int64
	AwayTeamID  int64
	KickoffAt   time.Time
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (f Fixture) Validate() error {
	if f.MatchweekID <= 0 {
		return fmt.Errorf("fixture matchweek id is required")
	}
	if f.HomeTeamID <= 0 {
		return fmt.Errorf("fixture home team id is required")
	}
	if f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture away team id is required")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture teams must differ")
	}
	if f.KickoffAt.IsZero() {
		return fmt.Errorf("fixture kickoff time is required")
	}

	return nil
}
