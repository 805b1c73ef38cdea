package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
)

type FixtureRepository struct {
	mu     sync.RWMutex
	items  map[int64]fixture.Fixture
	nextID int64
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{items: make(map[int64]fixture.Fixture), nextID: 1}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.items))
	for _, f := range r.items {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FixtureRepository) ListByMatchweek(_ context.Context, matchweekID int64) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, f := range r.items {
		if f.MatchweekID == matchweekID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[id]
	return f, ok, nil
}

func (r *FixtureRepository) Create(_ context.Context, f fixture.Fixture) (fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = r.nextID
	r.nextID++
	r.items[f.ID] = f
	return f, nil
}

func (r *FixtureRepository) Update(_ context.Context, f fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[f.ID]; !ok {
		return errNotFound("fixture", f.ID)
	}
	r.items[f.ID] = f
	return nil
}

func (r *FixtureRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return errNotFound("fixture", id)
	}
	delete(r.items, id)
	return nil
}
