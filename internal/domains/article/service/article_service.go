package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/microcosm-cc/bluemonday"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

const categoryNotFoundMessage = "category does not exist"

// titles end up in mail headers
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

type articleService struct {
	repo       article.Repository
	users      user.Repository
	categories category.CategoryService
	queue      shared.TaskEnqueuer
	policy     *bluemonday.Policy
	baseURL    string
}

// NewArticleService wires the article use cases. baseURL is used to build
// links in santa notification emails.
func NewArticleService(
	repo article.Repository,
	users user.Repository,
	categories category.CategoryService,
	queue shared.TaskEnqueuer,
	baseURL string,
) article.Service {
	return &articleService{
		repo:       repo,
		users:      users,
		categories: categories,
		queue:      queue,
		policy:     bluemonday.UGCPolicy(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *articleService) List(ctx context.Context) ([]article.ArticleListItem, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]article.ArticleListItem, len(articles))
	for i := range articles {
		items[i] = article.ToArticleListItem(&articles[i])
	}
	return items, nil
}

func (s *articleService) Details(ctx context.Context, id int64) (*article.ArticleResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := article.ToArticleResponse(a)
	return &resp, nil
}

func (s *articleService) NewForm(ctx context.Context) (*article.ArticleForm, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return &article.ArticleForm{Categories: categories}, nil
}

func (s *articleService) Create(ctx context.Context, p *user.Principal, form article.ArticleForm) (*article.ArticleResponse, error) {
	if p == nil {
		return nil, article.ErrAuthorNotFound
	}

	form.ID = 0
	s.clean(&form)
	if err := s.validateForm(ctx, &form, form.ValidateCreate); err != nil {
		return nil, err
	}

	author, err := s.users.FindByUserName(ctx, p.UserName)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, article.ErrAuthorNotFound
		}
		return nil, err
	}

	a := &article.Article{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
		Author:     article.PersonFrom(author.ID, author.UserName, author.FullName),
	}
	tags := article.NormalizeTags(form.Tags)

	santa, err := s.users.FindByUserNameOrFullName(ctx, form.YourSanta)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, s.formError(ctx, &form, map[string]string{"your_santa": article.IncorrectSantaMessage})
		}
		return nil, err
	}
	santaPerson := article.PersonFrom(santa.ID, santa.UserName, santa.FullName)
	a.Santa = &santaPerson

	err = s.repo.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, a); err != nil {
			return err
		}
		linked, err := s.repo.ReplaceTagsWithTx(ctx, tx, a.ID, tags)
		if err != nil {
			return err
		}
		a.Tags = linked
		return s.users.GrantRoleWithTx(ctx, tx, santa.ID, user.RoleSanta)
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.users.InvalidateCache(ctx, santa.ID)
	s.notifySanta(ctx, a, santa, author)

	logger.Info("article created", map[string]interface{}{
		"article_id": a.ID,
		"author":     author.UserName,
		"santa":      santa.UserName,
		"tags":       len(a.Tags),
	})

	resp := article.ToArticleResponse(a)
	return &resp, nil
}

// notifySanta enqueues the assignment email. Failures are logged only.
func (s *articleService) notifySanta(ctx context.Context, a *article.Article, santa, author *user.User) {
	payload, err := json.Marshal(shared.SantaAssignedPayload{
		SantaEmail:   santa.Email,
		SantaName:    santa.FullName,
		AuthorName:   author.FullName,
		ArticleID:    a.ID,
		ArticleTitle: a.Title,
		ArticleURL:   s.baseURL + "/api/v1/articles/details/" + strconv.FormatInt(a.ID, 10),
	})
	if err != nil {
		logger.Error("failed to marshal santa notification", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendSantaAssignedEmail, payload)
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5)); err != nil {
		logger.Error("failed to enqueue santa notification", err)
	}
}

func (s *articleService) EditForm(ctx context.Context, p *user.Principal, id int64) (*article.ArticleForm, error) {
	if !p.HasAnyRole(article.EditorRoles...) {
		return nil, article.ErrForbidden
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return article.ToEditForm(a, categories), nil
}

func (s *articleService) Update(ctx context.Context, p *user.Principal, id int64, form article.ArticleForm) (*article.ArticleResponse, error) {
	if !p.HasAnyRole(article.EditorRoles...) {
		return nil, article.ErrForbidden
	}

	form.ID = id
	s.clean(&form)
	if err := s.validateForm(ctx, &form, form.ValidateUpdate); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Title = form.Title
	a.Content = form.Content
	if a.CategoryID != form.CategoryID {
		a.CategoryID = form.CategoryID
		a.CategoryName = ""
	}
	tags := article.NormalizeTags(form.Tags)

	err = s.repo.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.UpdateWithTx(ctx, tx, a); err != nil {
			return err
		}
		linked, err := s.repo.ReplaceTagsWithTx(ctx, tx, a.ID, tags)
		if err != nil {
			return err
		}
		a.Tags = linked
		return nil
	})
	if err != nil {
		if errors.Is(err, article.ErrArticleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update article: %w", err)
	}

	logger.Info("article updated", map[string]interface{}{"article_id": a.ID, "editor": p.UserName})

	resp := article.ToArticleResponse(a)
	return &resp, nil
}

func (s *articleService) DeleteConfirmation(ctx context.Context, p *user.Principal, id int64) (*article.DeleteConfirmation, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.IsAuthorizedToEdit(p, a) {
		return nil, article.ErrForbidden
	}

	return &article.DeleteConfirmation{
		Article:   article.ToArticleResponse(a),
		TagString: a.TagString(),
	}, nil
}

func (s *articleService) Delete(ctx context.Context, p *user.Principal, id int64) error {
	if !p.HasAnyRole(article.EditorRoles...) {
		return article.ErrForbidden
	}

	err := s.repo.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.repo.DeleteWithTx(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, article.ErrArticleNotFound) {
			return err
		}
		return fmt.Errorf("delete article: %w", err)
	}

	logger.Info("article deleted", map[string]interface{}{"article_id": id, "deleted_by": p.UserName})
	return nil
}

// clean trims the text fields, folds the title onto one line and strips
// unsafe HTML from the content.
func (s *articleService) clean(form *article.ArticleForm) {
	form.Title = strings.TrimSpace(lineBreaks.Replace(form.Title))
	form.Content = strings.TrimSpace(s.policy.Sanitize(form.Content))
	form.YourSanta = strings.TrimSpace(form.YourSanta)
}

// validateForm checks the fields and the category reference. On failure the
// returned *FormError carries the form with categories repopulated.
func (s *articleService) validateForm(ctx context.Context, form *article.ArticleForm, validate func() error) error {
	fields := map[string]string{}

	if err := validate(); err != nil {
		fe, err := article.FieldErrors(err)
		if err != nil {
			return err
		}
		fields = fe
	}

	if _, bad := fields["category_id"]; !bad {
		exists, err := s.categories.Exists(ctx, form.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			fields["category_id"] = categoryNotFoundMessage
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return s.formError(ctx, form, fields)
}

func (s *articleService) formError(ctx context.Context, form *article.ArticleForm, fields map[string]string) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	form.Categories = categories
	return &article.FormError{Fields: fields, Form: form}
}
