package category

import "context"

type CategoryService interface {
	// List returns all categories sorted by name, served from cache when warm.
	List(ctx context.Context) ([]Category, error)

	Exists(ctx context.Context, id int64) (bool, error)
}
