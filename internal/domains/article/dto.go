package article

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/category"
)

// ArticleForm is both the create/edit request body and the form returned
// to the client for display.
type ArticleForm struct {
	ID         int64               `json:"id,omitempty" form:"id"`
	Title      string              `json:"title" form:"title"`
	Content    string              `json:"content" form:"content"`
	CategoryID int64               `json:"category_id" form:"category_id"`
	Tags       string              `json:"tags" form:"tags"`
	YourSanta  string              `json:"your_santa,omitempty" form:"your_santa"`
	Categories []category.Category `json:"categories" form:"-"`
}

// ValidateCreate also requires a santa.
func (f ArticleForm) ValidateCreate() error {
	return f.validate(true)
}

func (f ArticleForm) ValidateUpdate() error {
	return f.validate(false)
}

func (f ArticleForm) validate(requireSanta bool) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 255).Error("title must be at most 255 characters"),
		),
		validation.Field(&f.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&f.CategoryID,
			validation.Required.Error("category is required"),
			validation.Min(int64(1)).Error("category is required"),
		),
		validation.Field(&f.Tags,
			validation.RuneLength(0, 1000),
			validation.By(validateTagLengths),
		),
		validation.Field(&f.YourSanta,
			validation.When(requireSanta, validation.Required.Error("your santa is required")),
			validation.RuneLength(0, 256),
		),
	)
}

// FieldErrors flattens ozzo validation errors into field -> message.
// Non-validation errors are returned as is.
func FieldErrors(err error) (map[string]string, error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fields := make(map[string]string, len(verrs))
	for field, fe := range verrs {
		fields[field] = fe.Error()
	}
	return fields, nil
}

// ArticleListItem is one row of the article list.
type ArticleListItem struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Author Person   `json:"author"`
	Tags   []string `json:"tags"`
}

type ArticleResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Author       Person    `json:"author"`
	Santa        *Person   `json:"santa,omitempty"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DeleteConfirmation is shown before an article is deleted.
type DeleteConfirmation struct {
	Article   ArticleResponse `json:"article"`
	TagString string          `json:"tag_string"`
}

func tagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

func ToArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		CategoryID:   a.CategoryID,
		CategoryName: a.CategoryName,
		Author:       a.Author,
		Santa:        a.Santa,
		Tags:         tagNames(a.Tags),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func ToArticleListItem(a *Article) ArticleListItem {
	return ArticleListItem{
		ID:     a.ID,
		Title:  a.Title,
		Author: a.Author,
		Tags:   tagNames(a.Tags),
	}
}

// ToEditForm maps an article into the edit form.
func ToEditForm(a *Article, categories []category.Category) *ArticleForm {
	return &ArticleForm{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		CategoryID: a.CategoryID,
		Tags:       a.TagString(),
		Categories: categories,
	}
}

// PersonFrom copies the identity fields of a user.
func PersonFrom(id uuid.UUID, userName, fullName string) Person {
	return Person{ID: id, UserName: userName, FullName: fullName}
}
