package team

import (
	"fmt"
	"time"
)

// Team is a real football club whose players populate the selection pool.
type Team struct {
	ID        int64
	Name      string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Name) > 100 {
		return fmt.Errorf("team name must be at most 100 characters")
	}

	return nil
}
