package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	ListByMatchweek(ctx context.Context, matchweekID int64) ([]Fixture, error)
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	Create(ctx context.Context, f Fixture) (Fixture, error)
	Update(ctx context.Context, f Fixture) error
	Delete(ctx context.Context, id int64) error
}
