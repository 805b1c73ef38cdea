package matchweek

import "context"

// Repository describes matchweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Matchweek, error)
	GetByID(ctx context.Context, id int64) (Matchweek, bool, error)
	GetByWeekNumber(ctx context.Context, weekNumber int) (Matchweek, bool, error)
	Create(ctx context.Context, m Matchweek) (Matchweek, error)
	Update(ctx context.Context, m Matchweek) error
	Delete(ctx context.Context, id int64) error
}
