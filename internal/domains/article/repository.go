package article

import (
	"context"

	"github.com/jackc/pgx/v5"

	"blog-backend/pkg/database"
)

// Repository is the data access contract for articles and tags.
type Repository interface {
	// List returns every article with its author and tags.
	List(ctx context.Context) ([]Article, error)

	// FindByID returns ErrArticleNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*Article, error)

	// ListForExport returns every article with category and santa, ordered by category.
	ListForExport(ctx context.Context) ([]Article, error)

	// RunInTx runs fn in one transaction. The tx may be passed to other
	// repositories' ...WithTx methods.
	RunInTx(ctx context.Context, fn database.TxFunc) error

	// CreateWithTx inserts the article and fills ID and timestamps.
	CreateWithTx(ctx context.Context, tx pgx.Tx, a *Article) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, a *Article) error

	// ReplaceTagsWithTx drops the article's tag links and links it to names,
	// creating missing tags. Unreferenced tags are kept.
	ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, articleID int64, names []string) ([]Tag, error)

	DeleteWithTx(ctx context.Context, tx pgx.Tx, id int64) error
}
