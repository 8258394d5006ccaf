package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blog-backend/internal/domains/article"
	"blog-backend/pkg/database"
)

// selectArticle loads articles with category, author, santa and tags.
// Tag ids and names are aggregated in the same order.
const selectArticle = `
	SELECT
		a.id, a.title, a.content, a.category_id, c.name,
		au.id, au.user_name, au.full_name,
		s.id, s.user_name, s.full_name,
		COALESCE(array_agg(t.id ORDER BY t.name) FILTER (WHERE t.id IS NOT NULL), '{}') AS tag_ids,
		COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.id IS NOT NULL), '{}') AS tag_names,
		a.created_at, a.updated_at
	FROM articles a
	JOIN categories c ON c.id = a.category_id
	JOIN users au ON au.id = a.author_id
	LEFT JOIN users s ON s.id = a.santa_id
	LEFT JOIN article_tags at ON at.article_id = a.id
	LEFT JOIN tags t ON t.id = at.tag_id
`

const groupArticle = ` GROUP BY a.id, c.name, au.id, s.id`

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) article.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context) ([]article.Article, error) {
	return r.findMany(ctx, selectArticle+groupArticle+` ORDER BY a.id`)
}

func (r *postgresRepository) ListForExport(ctx context.Context) ([]article.Article, error) {
	return r.findMany(ctx, selectArticle+groupArticle+` ORDER BY c.name, a.id`)
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*article.Article, error) {
	row := r.pool.QueryRow(ctx, selectArticle+` WHERE a.id = $1`+groupArticle, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, article.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return a, nil
}

func (r *postgresRepository) findMany(ctx context.Context, query string) ([]article.Article, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]article.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

func scanArticle(row pgx.Row) (*article.Article, error) {
	var (
		a             article.Article
		santaID       *uuid.UUID
		santaUserName *string
		santaFullName *string
		tagIDs        []int64
		tagNames      []string
	)

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.CategoryID,
		&a.CategoryName,
		&a.Author.ID,
		&a.Author.UserName,
		&a.Author.FullName,
		&santaID,
		&santaUserName,
		&santaFullName,
		&tagIDs,
		&tagNames,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if santaID != nil {
		a.Santa = &article.Person{ID: *santaID}
		if santaUserName != nil {
			a.Santa.UserName = *santaUserName
		}
		if santaFullName != nil {
			a.Santa.FullName = *santaFullName
		}
	}

	a.Tags = make([]article.Tag, 0, len(tagNames))
	for i, name := range tagNames {
		var id int64
		if i < len(tagIDs) {
			id = tagIDs[i]
		}
		a.Tags = append(a.Tags, article.Tag{ID: id, Name: name})
	}
	return &a, nil
}

func (r *postgresRepository) RunInTx(ctx context.Context, fn database.TxFunc) error {
	return database.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *article.Article) error {
	query := `
		INSERT INTO articles (title, content, category_id, author_id, santa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	var santaID *uuid.UUID
	if a.Santa != nil {
		santaID = &a.Santa.ID
	}

	err := tx.QueryRow(ctx, query,
		a.Title,
		a.Content,
		a.CategoryID,
		a.Author.ID,
		santaID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, a *article.Article) error {
	query := `
		UPDATE articles
		SET title = $2, content = $3, category_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := tx.QueryRow(ctx, query, a.ID, a.Title, a.Content, a.CategoryID).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.ErrArticleNotFound
		}
		return fmt.Errorf("update article %d: %w", a.ID, err)
	}
	return nil
}

// ReplaceTagsWithTx upserts each tag by its unique name so concurrent
// writers converge on a single row.
func (r *postgresRepository) ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, articleID int64, names []string) ([]article.Tag, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, articleID); err != nil {
		return nil, fmt.Errorf("clear article tags: %w", err)
	}

	upsertTag := `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	linkTag := `
		INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)
		ON CONFLICT (article_id, tag_id) DO NOTHING
	`

	tags := make([]article.Tag, 0, len(names))
	for _, name := range names {
		tag := article.Tag{Name: name}
		if err := tx.QueryRow(ctx, upsertTag, name).Scan(&tag.ID); err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", name, err)
		}
		if _, err := tx.Exec(ctx, linkTag, articleID, tag.ID); err != nil {
			return nil, fmt.Errorf("link tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// DeleteWithTx removes the article. Its tag links go with it via ON DELETE CASCADE.
func (r *postgresRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}
	return nil
}
