// Package repotest provides in-memory repositories for service and handler
// tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rushi-mungse/product-microservice/internal/models"
	"github.com/rushi-mungse/product-microservice/internal/repository"
)

// store keeps rows by id and counts every call that touches them.
type store[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	Err    error

	Finds   int
	Saves   int
	Deletes int
}

func newStore[T any]() *store[T] {
	return &store[T]{rows: map[int64]T{}, nextID: 1}
}

func (s *store[T]) all() []T {
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rows[id])
	}
	return out
}

// Calls returns how many repository methods have run.
func (s *store[T]) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Finds + s.Saves + s.Deletes
}

// Len returns the number of stored rows.
func (s *store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type Categories struct {
	*store[models.Category]
}

var _ repository.CategoryRepository = (*Categories)(nil)

func NewCategories() *Categories {
	return &Categories{newStore[models.Category]()}
}

func (r *Categories) FindAll(context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finds++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.all(), nil
}

func (r *Categories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finds++
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Categories) Save(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saves++
	if r.Err != nil {
		return r.Err
	}
	now := time.Now()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.rows[c.ID] = *c
	return nil
}

func (r *Categories) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deletes++
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type Products struct {
	*store[models.Product]
}

var _ repository.ProductRepository = (*Products)(nil)

func NewProducts() *Products {
	return &Products{newStore[models.Product]()}
}

func (r *Products) FindAll(context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finds++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.all(), nil
}

func (r *Products) FindByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finds++
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *Products) Save(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saves++
	if r.Err != nil {
		return r.Err
	}
	now := time.Now()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.rows[p.ID] = *p
	return nil
}

func (r *Products) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deletes++
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
