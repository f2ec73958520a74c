package shape

import "encoding/json"

// Collection is an immutable, ordered set of shapes indexed by id. Every
// method that changes the contents returns a new Collection; the receiver is
// never modified, so a Collection can be held as a history snapshot.
//
// Order is paint order as stored; it carries no geometric meaning.
type Collection struct {
	shapes []Shape
	index  map[string]int
}

// NewCollection copies shapes into a new collection. When ids repeat, lookups
// resolve to the first occurrence.
func NewCollection(shapes ...Shape) Collection {
	c := Collection{shapes: make([]Shape, len(shapes))}
	copy(c.shapes, shapes)
	c.reindex()
	return c
}

func (c *Collection) reindex() {
	c.index = make(map[string]int, len(c.shapes))
	for i, s := range c.shapes {
		if _, ok := c.index[s.ID]; !ok {
			c.index[s.ID] = i
		}
	}
}

func (c Collection) Len() int { return len(c.shapes) }

// At returns the i'th shape. Slice fields are shared with the collection and
// must not be modified; use Clone first.
func (c Collection) At(i int) Shape { return c.shapes[i] }

// All returns the shapes in order.
func (c Collection) All() []Shape {
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

func (c Collection) IDs() []string {
	ids := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		ids[i] = s.ID
	}
	return ids
}

// Get looks up a shape by id.
func (c Collection) Get(id string) (Shape, bool) {
	if id == "" {
		return Shape{}, false
	}
	if c.index == nil {
		for _, s := range c.shapes {
			if s.ID == id {
				return s, true
			}
		}
		return Shape{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Shape{}, false
	}
	return c.shapes[i], true
}

func (c Collection) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Append returns a collection with shapes added at the end.
func (c Collection) Append(shapes ...Shape) Collection {
	out := make([]Shape, 0, len(c.shapes)+len(shapes))
	out = append(out, c.shapes...)
	out = append(out, shapes...)
	return NewCollection(out...)
}

// Replace swaps in s for the shape with the same id. Unknown ids leave the
// collection unchanged.
func (c Collection) Replace(s Shape) Collection {
	return c.Map(func(old Shape) Shape {
		if old.ID == s.ID {
			return s
		}
		return old
	})
}

// Update applies fn to a clone of the shape with the given id.
func (c Collection) Update(id string, fn func(*Shape)) Collection {
	return c.Map(func(old Shape) Shape {
		if old.ID != id {
			return old
		}
		s := old.Clone()
		fn(&s)
		return s
	})
}

// Map returns a collection built from fn applied to each shape in order.
func (c Collection) Map(fn func(Shape) Shape) Collection {
	out := make([]Shape, len(c.shapes))
	for i, s := range c.shapes {
		out[i] = fn(s)
	}
	res := Collection{shapes: out}
	res.reindex()
	return res
}

// Filter keeps the shapes for which keep returns true.
func (c Collection) Filter(keep func(Shape) bool) Collection {
	out := make([]Shape, 0, len(c.shapes))
	for _, s := range c.shapes {
		if keep(s) {
			out = append(out, s)
		}
	}
	res := Collection{shapes: out}
	res.reindex()
	return res
}

// Remove drops every shape whose id is listed.
func (c Collection) Remove(ids ...string) Collection {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	return c.Filter(func(s Shape) bool { return !drop[s.ID] })
}

func (c Collection) MarshalJSON() ([]byte, error) {
	if c.shapes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.shapes)
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var shapes []Shape
	if err := json.Unmarshal(data, &shapes); err != nil {
		return err
	}
	*c = NewCollection(shapes...)
	return nil
}
