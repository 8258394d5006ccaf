package article

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article maps to the articles table with its author, santa and tags loaded.
type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Author       Person    `json:"author"`
	Santa        *Person   `json:"santa,omitempty"`
	Tags         []Tag     `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Person is the slice of a user an article refers to.
type Person struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	FullName string    `json:"full_name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (a *Article) IsAuthor(userName string) bool {
	return userName != "" && a.Author.UserName == userName
}

func (a *Article) IsSanta(userName string) bool {
	return userName != "" && a.Santa != nil && a.Santa.UserName == userName
}

// TagString joins the tag names with commas, as shown on edit and delete forms.
func (a *Article) TagString() string {
	names := make([]string, len(a.Tags))
	for i, t := range a.Tags {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}
