package article

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blog-backend/internal/domains/user"
)

func TestIsAuthorizedToEdit(t *testing.T) {
	a := &Article{
		Author: Person{ID: uuid.New(), UserName: "alice"},
		Santa:  &Person{ID: uuid.New(), UserName: "nick"},
	}
	noSanta := &Article{Author: Person{UserName: "alice"}}

	tests := []struct {
		name    string
		p       *user.Principal
		article *Article
		want    bool
	}{
		{"anonymous", nil, a, false},
		{"admin", &user.Principal{UserName: "root", Roles: []user.Role{user.RoleAdmin}}, a, true},
		{"author", &user.Principal{UserName: "alice"}, a, true},
		{"santa", &user.Principal{UserName: "nick"}, a, true},
		{"santa role only", &user.Principal{UserName: "eve", Roles: []user.Role{user.RoleSanta}}, a, false},
		{"stranger", &user.Principal{UserName: "eve"}, a, false},
		{"no santa assigned", &user.Principal{UserName: "nick"}, noSanta, false},
		{"empty user name", &user.Principal{}, noSanta, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthorizedToEdit(tt.p, tt.article))
		})
	}
}
