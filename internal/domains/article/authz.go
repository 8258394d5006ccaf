package article

import "blog-backend/internal/domains/user"

// EditorRoles may open the edit form and delete articles.
var EditorRoles = []user.Role{user.RoleAdmin, user.RoleSanta}

// IsAuthorizedToEdit reports whether p is an admin, the article's author or its santa.
// An anonymous caller is never authorized.
func IsAuthorizedToEdit(p *user.Principal, a *Article) bool {
	if p == nil || a == nil {
		return false
	}
	return p.IsAdmin() || a.IsAuthor(p.UserName) || a.IsSanta(p.UserName)
}
