package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
)

// RosterRepository keeps user teams and memberships in memory. It joins
// against the player and team stores to produce member info rows the way
// the SQL implementation does.
type RosterRepository struct {
	mu      sync.RWMutex
	teams   map[int64]roster.UserTeam
	members map[int64][]roster.Member
	nextID  int64

	players *PlayerRepository
	pool    *TeamRepository
}

func NewRosterRepository(players *PlayerRepository, pool *TeamRepository) *RosterRepository {
	return &RosterRepository{
		teams:   make(map[int64]roster.UserTeam),
		members: make(map[int64][]roster.Member),
		nextID:  1,
		players: players,
		pool:    pool,
	}
}

func (r *RosterRepository) List(_ context.Context) ([]roster.UserTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.UserTeam, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) GetByID(_ context.Context, id int64) (roster.UserTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	return t, ok, nil
}

func (r *RosterRepository) GetByUserID(_ context.Context, userID int64) (roster.UserTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.UserID == userID {
			return t, true, nil
		}
	}
	return roster.UserTeam{}, false, nil
}

func (r *RosterRepository) UserHasTeam(ctx context.Context, userID int64) (bool, error) {
	_, found, err := r.GetByUserID(ctx, userID)
	return found, err
}

func (r *RosterRepository) Create(_ context.Context, t roster.UserTeam) (roster.UserTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teams {
		if existing.UserID == t.UserID {
			return roster.UserTeam{}, roster.ErrUserTeamExists
		}
	}

	t.ID = r.nextID
	r.nextID++
	r.teams[t.ID] = t
	return t, nil
}

func (r *RosterRepository) Update(_ context.Context, t roster.UserTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[t.ID]; !ok {
		return errNotFound("user team", t.ID)
	}
	r.teams[t.ID] = t
	return nil
}

func (r *RosterRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[id]; !ok {
		return errNotFound("user team", id)
	}
	delete(r.teams, id)
	delete(r.members, id)
	return nil
}

func (r *RosterRepository) ListMembers(ctx context.Context, userTeamID int64) ([]roster.MemberInfo, error) {
	r.mu.RLock()
	members := append([]roster.Member(nil), r.members[userTeamID]...)
	r.mu.RUnlock()

	out := make([]roster.MemberInfo, 0, len(members))
	for _, m := range members {
		info := roster.MemberInfo{PlayerID: m.PlayerID, AddedAt: m.AddedAt}
		if p, ok, _ := r.players.GetByID(ctx, m.PlayerID); ok {
			info.PlayerName = p.Name
			info.Position = p.Position
			info.TeamID = p.TeamID
			if t, ok, _ := r.pool.GetByID(ctx, p.TeamID); ok {
				info.TeamName = t.Name
			}
		}
		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *RosterRepository) HasMember(_ context.Context, userTeamID, playerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[userTeamID] {
		if m.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *RosterRepository) AddMember(_ context.Context, m roster.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[m.UserTeamID]; !ok {
		return errNotFound("user team", m.UserTeamID)
	}
	for _, existing := range r.members[m.UserTeamID] {
		if existing.PlayerID == m.PlayerID {
			return roster.ErrMemberExists
		}
	}
	r.members[m.UserTeamID] = append(r.members[m.UserTeamID], m)
	return nil
}

func (r *RosterRepository) RemoveMember(_ context.Context, userTeamID, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.members[userTeamID]
	for i, m := range members {
		if m.PlayerID == playerID {
			r.members[userTeamID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return errNotFound("roster member", playerID)
}

func (r *RosterRepository) UpdateTotalPoints(_ context.Context, userTeamID int64, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[userTeamID]
	if !ok {
		return errNotFound("user team", userTeamID)
	}
	t.TotalPoints = totalPoints
	r.teams[userTeamID] = t
	return nil
}
