package article

import (
	"context"

	"blog-backend/internal/domains/user"
)

type Service interface {
	List(ctx context.Context) ([]ArticleListItem, error)
	Details(ctx context.Context, id int64) (*ArticleResponse, error)

	// NewForm returns a blank form with categories sorted by name.
	NewForm(ctx context.Context) (*ArticleForm, error)

	// Create persists the article, links its tags and grants the Santa role
	// in one transaction. Returns *FormError when the form is invalid or the
	// santa cannot be found.
	Create(ctx context.Context, p *user.Principal, form ArticleForm) (*ArticleResponse, error)

	EditForm(ctx context.Context, p *user.Principal, id int64) (*ArticleForm, error)
	Update(ctx context.Context, p *user.Principal, id int64, form ArticleForm) (*ArticleResponse, error)

	// DeleteConfirmation accepts a nil principal, which is always forbidden.
	DeleteConfirmation(ctx context.Context, p *user.Principal, id int64) (*DeleteConfirmation, error)
	Delete(ctx context.Context, p *user.Principal, id int64) error

	// ExportExcel renders all articles as an xlsx workbook.
	ExportExcel(ctx context.Context) ([]byte, error)
}
