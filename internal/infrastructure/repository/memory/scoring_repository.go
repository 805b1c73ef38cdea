package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
)

type EventRepository struct {
	mu     sync.RWMutex
	items  map[int64]scoring.MatchEvent
	nextID int64

	fixtures *FixtureRepository
}

func NewEventRepository(fixtures *FixtureRepository) *EventRepository {
	return &EventRepository{
		items:    make(map[int64]scoring.MatchEvent),
		nextID:   1,
		fixtures: fixtures,
	}
}

func (r *EventRepository) Create(_ context.Context, e scoring.MatchEvent) (scoring.MatchEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	r.items[e.ID] = e
	return e, nil
}

func (r *EventRepository) GetByID(_ context.Context, id int64) (scoring.MatchEvent, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	return e, ok, nil
}

func (r *EventRepository) ListByFixture(_ context.Context, fixtureID int64) ([]scoring.MatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.MatchEvent, 0)
	for _, e := range r.items {
		if e.FixtureID == fixtureID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EventRepository) ListByMatchweek(ctx context.Context, matchweekID int64) ([]scoring.MatchEvent, error) {
	fixtures, err := r.fixtures.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, err
	}
	inWeek := make(map[int64]struct{}, len(fixtures))
	for _, f := range fixtures {
		inWeek[f.ID] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.MatchEvent, 0)
	for _, e := range r.items {
		if _, ok := inWeek[e.FixtureID]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EventRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return errNotFound("match event", id)
	}
	delete(r.items, id)
	return nil
}

type SnapshotRepository struct {
	mu     sync.RWMutex
	items  map[int64]scoring.Snapshot
	nextID int64
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{items: make(map[int64]scoring.Snapshot), nextID: 1}
}

func (r *SnapshotRepository) Create(_ context.Context, s scoring.Snapshot) (scoring.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserTeamID == s.UserTeamID && existing.MatchweekID == s.MatchweekID {
			return cloneSnapshot(existing), nil
		}
	}

	s.ID = r.nextID
	r.nextID++
	r.items[s.ID] = cloneSnapshot(s)
	return s, nil
}

func (r *SnapshotRepository) Get(_ context.Context, userTeamID, matchweekID int64) (scoring.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.UserTeamID == userTeamID && s.MatchweekID == matchweekID {
			return cloneSnapshot(s), true, nil
		}
	}
	return scoring.Snapshot{}, false, nil
}

func (r *SnapshotRepository) ListByMatchweek(_ context.Context, matchweekID int64) ([]scoring.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Snapshot, 0)
	for _, s := range r.items {
		if s.MatchweekID == matchweekID {
			out = append(out, cloneSnapshot(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SnapshotRepository) ListByUserTeam(_ context.Context, userTeamID int64) ([]scoring.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Snapshot, 0)
	for _, s := range r.items {
		if s.UserTeamID == userTeamID {
			out = append(out, cloneSnapshot(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneSnapshot(s scoring.Snapshot) scoring.Snapshot {
	copied := s
	copied.Players = append([]scoring.SnapshotPlayer(nil), s.Players...)
	return copied
}

type PointsRepository struct {
	mu    sync.RWMutex
	items map[pointsKey]scoring.MatchweekPoints
}

type pointsKey struct {
	userTeamID  int64
	matchweekID int64
}

func NewPointsRepository() *PointsRepository {
	return &PointsRepository{items: make(map[pointsKey]scoring.MatchweekPoints)}
}

func (r *PointsRepository) Upsert(_ context.Context, p scoring.MatchweekPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pointsKey{p.UserTeamID, p.MatchweekID}] = p
	return nil
}

func (r *PointsRepository) ListByUserTeam(_ context.Context, userTeamID int64) ([]scoring.MatchweekPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.MatchweekPoints, 0)
	for _, p := range r.items {
		if p.UserTeamID == userTeamID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchweekID < out[j].MatchweekID })
	return out, nil
}

func (r *PointsRepository) ListByMatchweek(_ context.Context, matchweekID int64) ([]scoring.MatchweekPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.MatchweekPoints, 0)
	for _, p := range r.items {
		if p.MatchweekID == matchweekID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserTeamID < out[j].UserTeamID })
	return out, nil
}
