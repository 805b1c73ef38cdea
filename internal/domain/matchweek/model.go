package matchweek

import (
	"fmt"
	"sort"
	"time"
)

// Status is the lifecycle stage of a matchweek.
type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusActive:    {},
	StatusCompleted: {},
}

// Matchweek is one round of fixtures with a shared selection deadline.
type Matchweek struct {
	ID         int64
	WeekNumber int
	Deadline   time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (m Matchweek) Validate() error {
	if m.WeekNumber <= 0 {
		return fmt.Errorf("week number must be greater than zero")
	}
	if m.Deadline.IsZero() {
		return fmt.Errorf("matchweek deadline is required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid matchweek status: %s", m.Status)
	}

	return nil
}

// CanModify reports whether rosters may still change for this matchweek.
// Modification closes the instant the deadline is reached.
func (m Matchweek) CanModify(now time.Time) bool {
	return now.Before(m.Deadline)
}

// Current picks the matchweek whose deadline has not yet passed and which
// is not completed, preferring the earliest week number. It returns false
// when every matchweek is over.
func Current(weeks []Matchweek, now time.Time) (Matchweek, bool) {
	candidates := make([]Matchweek, 0, len(weeks))
	for _, w := range weeks {
		if w.Status == StatusCompleted {
			continue
		}
		if w.Deadline.Before(now) {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) == 0 {
		return Matchweek{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].WeekNumber < candidates[j].WeekNumber
	})

	return candidates[0], true
}
