package entity

// Category is a magazine rubric articles are filed under.
type Category struct {
	id   int64
	name string
}

// CategoryState is the field snapshot used by the category factory.
type CategoryState struct {
	ID   int64
	Name string
}

// RestoreCategory rehydrates a category from a snapshot.
func RestoreCategory(s CategoryState) *Category {
	return &Category{id: s.ID, name: s.Name}
}

// State returns a snapshot of the category for serialization.
func (c *Category) State() CategoryState {
	return CategoryState{ID: c.id, Name: c.name}
}

func (c *Category) ID() int64    { return c.id }
func (c *Category) Name() string { return c.name }

// Rename changes the category name.
func (c *Category) Rename(name string) error {
	if name == "" {
		return Validationf("category name must not be empty")
	}
	c.name = name
	return nil
}
