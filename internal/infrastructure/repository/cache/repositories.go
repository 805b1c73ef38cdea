// Package cache wraps the pool repositories with read-through caching.
// The pool data (teams, players, matchweeks) is read on every roster
// mutation but changes rarely, so it caches well. Roster and scoring
// repositories are not wrapped: their writes dominate.
package cache

import (
	"context"
	"strconv"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	basecache "github.com/karimzakaria/fantasy-backend/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, t)
	if err == nil {
		r.cache.DeletePrefix(ctx, "team:")
	}
	return created, err
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	err := r.next.Update(ctx, t)
	if err == nil {
		r.cache.DeletePrefix(ctx, "team:")
	}
	return err
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.cache.DeletePrefix(ctx, "team:")
	}
	return err
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	key := "player:team:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := "player:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, p)
	if err == nil {
		r.cache.DeletePrefix(ctx, "player:")
	}
	return created, err
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	err := r.next.Update(ctx, p)
	if err == nil {
		r.cache.DeletePrefix(ctx, "player:")
	}
	return err
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.cache.DeletePrefix(ctx, "player:")
	}
	return err
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

type MatchweekRepository struct {
	next  matchweek.Repository
	cache *basecache.Store
}

func NewMatchweekRepository(next matchweek.Repository, cache *basecache.Store) *MatchweekRepository {
	return &MatchweekRepository{next: next, cache: cache}
}

func (r *MatchweekRepository) List(ctx context.Context) ([]matchweek.Matchweek, error) {
	v, err := r.cache.GetOrLoad(ctx, "matchweek:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]matchweek.Matchweek(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchweek.Matchweek)
	return append([]matchweek.Matchweek(nil), items...), nil
}

func (r *MatchweekRepository) GetByID(ctx context.Context, id int64) (matchweek.Matchweek, bool, error) {
	key := "matchweek:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedMatchweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return matchweek.Matchweek{}, false, err
	}

	cached, _ := v.(cachedMatchweek)
	return cached.value, cached.exists, nil
}

func (r *MatchweekRepository) GetByWeekNumber(ctx context.Context, weekNumber int) (matchweek.Matchweek, bool, error) {
	return r.next.GetByWeekNumber(ctx, weekNumber)
}

func (r *MatchweekRepository) Create(ctx context.Context, m matchweek.Matchweek) (matchweek.Matchweek, error) {
	created, err := r.next.Create(ctx, m)
	if err == nil {
		r.cache.DeletePrefix(ctx, "matchweek:")
	}
	return created, err
}

func (r *MatchweekRepository) Update(ctx context.Context, m matchweek.Matchweek) error {
	err := r.next.Update(ctx, m)
	if err == nil {
		r.cache.DeletePrefix(ctx, "matchweek:")
	}
	return err
}

func (r *MatchweekRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.cache.DeletePrefix(ctx, "matchweek:")
	}
	return err
}

type cachedMatchweek struct {
	value  matchweek.Matchweek
	exists bool
}
