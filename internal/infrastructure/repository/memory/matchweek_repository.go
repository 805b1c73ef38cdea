package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
)

type MatchweekRepository struct {
	mu     sync.RWMutex
	items  map[int64]matchweek.Matchweek
	nextID int64
}

func NewMatchweekRepository() *MatchweekRepository {
	return &MatchweekRepository{items: make(map[int64]matchweek.Matchweek), nextID: 1}
}

func (r *MatchweekRepository) List(_ context.Context) ([]matchweek.Matchweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchweek.Matchweek, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (r *MatchweekRepository) GetByID(_ context.Context, id int64) (matchweek.Matchweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	return m, ok, nil
}

func (r *MatchweekRepository) GetByWeekNumber(_ context.Context, weekNumber int) (matchweek.Matchweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.WeekNumber == weekNumber {
			return m, true, nil
		}
	}
	return matchweek.Matchweek{}, false, nil
}

func (r *MatchweekRepository) Create(_ context.Context, m matchweek.Matchweek) (matchweek.Matchweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.items[m.ID] = m
	return m, nil
}

func (r *MatchweekRepository) Update(_ context.Context, m matchweek.Matchweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.ID]; !ok {
		return errNotFound("matchweek", m.ID)
	}
	r.items[m.ID] = m
	return nil
}

func (r *MatchweekRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return errNotFound("matchweek", id)
	}
	delete(r.items, id)
	return nil
}
