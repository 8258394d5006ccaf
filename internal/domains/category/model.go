package category

// Category is a pre-seeded article category. The API never modifies it.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
