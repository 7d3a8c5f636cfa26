package domain

// Category groups operations under a named income or expense bucket.
type Category struct {
	ID   string
	Type TransactionType
	Name string
}

// RestoreCategory rebuilds a category with a caller-supplied identity.
func RestoreCategory(id string, t TransactionType, name string) *Category {
	return &Category{
		ID:   id,
		Type: t,
		Name: name,
	}
}

// UpdateName replaces the display name.
func (c *Category) UpdateName(name string) {
	c.Name = name
}

// UpdateType replaces the kind tag.
func (c *Category) UpdateType(t TransactionType) {
	c.Type = t
}
