package category

import "context"

type CategoryRepository interface {
	// ListOrderedByName returns all categories sorted by name.
	ListOrderedByName(ctx context.Context) ([]Category, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
}
