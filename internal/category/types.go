package category

// Category is a labeled grouping for questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Map is the {id: type} mapping returned to clients. JSON encodes the keys as strings.
type Map map[int]string

// MapOf builds the id to label mapping for categories.
func MapOf(categories []Category) Map {
	m := make(Map, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
