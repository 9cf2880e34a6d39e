package domain

import (
	"fmt"
	"sort"
)

// Category groups questions under a unique name.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryRegistry enforces category name uniqueness for one match run.
// It is append-only: categories are never removed.
type CategoryRegistry struct {
	byName map[string]*Category
	byID   map[int]*Category
	nextID int
}

func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{
		byName: make(map[string]*Category),
		byID:   make(map[int]*Category),
		nextID: 1,
	}
}

// Ensure returns the category registered under name, creating it with the next
// free id on first use.
func (r *CategoryRegistry) Ensure(name string) *Category {
	if c, ok := r.byName[name]; ok {
		return c
	}
	for {
		if _, taken := r.byID[r.nextID]; !taken {
			break
		}
		r.nextID++
	}
	c := &Category{ID: r.nextID, Name: name}
	r.byName[name] = c
	r.byID[c.ID] = c
	r.nextID++
	return c
}

// Register inserts a category with a caller-chosen id. Registering the same
// pair again returns the existing instance; reusing either the id or the name
// with a different counterpart fails with ErrCategoryConflict.
func (r *CategoryRegistry) Register(id int, name string) (*Category, error) {
	if c, ok := r.byName[name]; ok {
		if c.ID != id {
			return nil, fmt.Errorf("category %q registered with id %d: %w", name, c.ID, ErrCategoryConflict)
		}
		return c, nil
	}
	if c, ok := r.byID[id]; ok {
		return nil, fmt.Errorf("category id %d belongs to %q: %w", id, c.Name, ErrCategoryConflict)
	}
	c := &Category{ID: id, Name: name}
	r.byName[name] = c
	r.byID[id] = c
	return c, nil
}

func (r *CategoryRegistry) ByName(name string) (*Category, error) {
	if c, ok := r.byName[name]; ok {
		return c, nil
	}
	return nil, ErrCategoryNotFound
}

func (r *CategoryRegistry) ByID(id int) (*Category, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, ErrCategoryNotFound
}

// Len reports how many categories have been registered.
func (r *CategoryRegistry) Len() int {
	return len(r.byID)
}

// All returns copies of every registered category ordered by id.
func (r *CategoryRegistry) All() []Category {
	out := make([]Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
