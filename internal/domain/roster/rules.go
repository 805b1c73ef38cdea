package roster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
)

var (
	ErrRosterFull          = errors.New("roster already has the maximum number of players")
	ErrGoalkeeperLimit     = errors.New("roster goalkeeper limit reached")
	ErrMissingGoalkeeper   = errors.New("roster must include a goalkeeper")
	ErrDuplicateSourceTeam = errors.New("roster already has a player from this team")
	ErrDuplicatePlayer     = errors.New("player is already in the roster")
	ErrIncompleteRoster    = errors.New("roster does not have the required number of players")
)

// Rules stores roster validation parameters.
type Rules struct {
	MaxPlayers     int
	MinGoalkeepers int
	MaxGoalkeepers int
}

func DefaultRules() Rules {
	return Rules{
		MaxPlayers:     4,
		MinGoalkeepers: 1,
		MaxGoalkeepers: 1,
	}
}

func (r Rules) Validate() error {
	if r.MaxPlayers <= 0 {
		return fmt.Errorf("max players must be greater than zero")
	}
	if r.MinGoalkeepers < 0 {
		return fmt.Errorf("min goalkeepers must not be negative")
	}
	if r.MaxGoalkeepers < r.MinGoalkeepers {
		return fmt.Errorf("max goalkeepers must not be below min goalkeepers")
	}
	if r.MaxGoalkeepers > r.MaxPlayers {
		return fmt.Errorf("max goalkeepers must not exceed max players")
	}

	return nil
}

// ValidationResult reports the outcome of a roster constraint check.
// Err carries the primary violation; Violations lists every failed rule.
type ValidationResult struct {
	Valid      bool
	Err        error
	Violations []string
}

// CompositionStats summarizes how a roster measures against the rules.
type CompositionStats struct {
	PlayerCount        int
	GoalkeeperCount    int
	DefenderCount      int
	MidfielderCount    int
	ForwardCount       int
	SourceTeamCount    int
	RepresentedTeamIDs []int64
	MeetsPlayerCount   bool
	MeetsGoalkeeper    bool
	MeetsUniqueTeams   bool
	ValidForLock       bool
}

// ComputeCompositionStats derives roster composition counters and rule flags.
// An empty roster trivially satisfies team uniqueness but nothing else.
// RepresentedTeamIDs lists each distinct source team once, in ascending order.
func ComputeCompositionStats(members []MemberInfo, rules Rules) CompositionStats {
	stats := CompositionStats{PlayerCount: len(members)}

	teamCounter := make(map[int64]int)
	for _, m := range members {
		switch m.Position {
		case player.PositionGoalkeeper:
			stats.GoalkeeperCount++
		case player.PositionDefender:
			stats.DefenderCount++
		case player.PositionMidfielder:
			stats.MidfielderCount++
		case player.PositionForward:
			stats.ForwardCount++
		}
		if teamCounter[m.TeamID] == 0 {
			stats.RepresentedTeamIDs = append(stats.RepresentedTeamIDs, m.TeamID)
		}
		teamCounter[m.TeamID]++
	}
	sort.Slice(stats.RepresentedTeamIDs, func(i, j int) bool {
		return stats.RepresentedTeamIDs[i] < stats.RepresentedTeamIDs[j]
	})
	stats.SourceTeamCount = len(teamCounter)

	stats.MeetsPlayerCount = stats.PlayerCount == rules.MaxPlayers
	stats.MeetsGoalkeeper = stats.GoalkeeperCount >= rules.MinGoalkeepers && stats.GoalkeeperCount <= rules.MaxGoalkeepers

	stats.MeetsUniqueTeams = true
	for _, n := range teamCounter {
		if n > 1 {
			stats.MeetsUniqueTeams = false
			break
		}
	}

	stats.ValidForLock = stats.MeetsPlayerCount && stats.MeetsGoalkeeper && stats.MeetsUniqueTeams

	return stats
}

// ValidateAddition checks whether candidate may join the current roster.
// Rules are checked in a fixed order: roster capacity, goalkeeper limit,
// source team uniqueness, then duplicate player.
func ValidateAddition(members []MemberInfo, candidate MemberInfo, rules Rules) ValidationResult {
	result := ValidationResult{Valid: true}

	if len(members) >= rules.MaxPlayers {
		result.fail(fmt.Errorf("%w: max=%d", ErrRosterFull, rules.MaxPlayers))
	}

	if candidate.Position == player.PositionGoalkeeper {
		goalkeepers := 0
		for _, m := range members {
			if m.Position == player.PositionGoalkeeper {
				goalkeepers++
			}
		}
		if goalkeepers >= rules.MaxGoalkeepers {
			result.fail(fmt.Errorf("%w: max=%d", ErrGoalkeeperLimit, rules.MaxGoalkeepers))
		}
	}

	for _, m := range members {
		if m.TeamID == candidate.TeamID {
			result.fail(fmt.Errorf("%w: team=%d", ErrDuplicateSourceTeam, candidate.TeamID))
			break
		}
	}

	for _, m := range members {
		if m.PlayerID == candidate.PlayerID {
			result.fail(fmt.Errorf("%w: player=%d", ErrDuplicatePlayer, candidate.PlayerID))
			break
		}
	}

	return result
}

// ValidateForLock checks whether the roster satisfies every lock requirement:
// exact player count, goalkeeper bounds, and source team uniqueness.
func ValidateForLock(members []MemberInfo, rules Rules) ValidationResult {
	result := ValidationResult{Valid: true}
	stats := ComputeCompositionStats(members, rules)

	if !stats.MeetsPlayerCount {
		result.fail(fmt.Errorf("%w: expected %d, got %d", ErrIncompleteRoster, rules.MaxPlayers, stats.PlayerCount))
	}
	if stats.GoalkeeperCount < rules.MinGoalkeepers {
		result.fail(fmt.Errorf("%w: min=%d current=%d", ErrMissingGoalkeeper, rules.MinGoalkeepers, stats.GoalkeeperCount))
	}
	if stats.GoalkeeperCount > rules.MaxGoalkeepers {
		result.fail(fmt.Errorf("%w: max=%d current=%d", ErrGoalkeeperLimit, rules.MaxGoalkeepers, stats.GoalkeeperCount))
	}
	if !stats.MeetsUniqueTeams {
		result.fail(fmt.Errorf("%w", ErrDuplicateSourceTeam))
	}

	return result
}

func (r *ValidationResult) fail(err error) {
	if r.Valid {
		r.Valid = false
		r.Err = err
	}
	r.Violations = append(r.Violations, err.Error())
}
