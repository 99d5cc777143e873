package entries

import "income-tax-tracker/internal/models"

// Collection is an owner's entries in insertion order, which is also display order.
type Collection []models.Entry

// Append returns a new collection with e at the end. c is left untouched.
func Append(c Collection, e models.Entry) Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, e)
}

// Remove returns a new collection without the first entry with id.
// When nothing matches c is returned as is.
func Remove(c Collection, id int64) Collection {
	for i := range c {
		if c[i].ID != id {
			continue
		}
		out := make(Collection, 0, len(c)-1)
		out = append(out, c[:i]...)
		return append(out, c[i+1:]...)
	}
	return c
}

// ForOwner returns the owner's collection, creating an empty one on first access.
func ForOwner(collections map[string]Collection, owner string) Collection {
	c, ok := collections[owner]
	if !ok {
		c = Collection{}
		collections[owner] = c
	}
	return c
}
