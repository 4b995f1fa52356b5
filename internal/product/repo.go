// Package product is the product entity store: an in-memory table of
// products reachable through GET /product/{id} and POST /product.
package product

import (
	"context"

	"github.com/MikeMC777/ordenes-saga/internal/store"
)

type Repository interface {
	GetByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id int, fn func(cur Product) (Product, error)) (*Product, error)
	Delete(ctx context.Context, id int, check func(cur Product) error) error
}

type MemRepo struct{ t *store.Table[Product] }

func NewMemRepo() *MemRepo { return &MemRepo{t: store.NewTable[Product]()} }

func (r *MemRepo) GetByID(_ context.Context, id int) (*Product, error) {
	p, err := r.t.Get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MemRepo) Create(_ context.Context, p *Product) error {
	return r.t.Insert(p.ID, *p)
}

func (r *MemRepo) Update(_ context.Context, id int, fn func(cur Product) (Product, error)) (*Product, error) {
	p, err := r.t.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MemRepo) Delete(_ context.Context, id int, check func(cur Product) error) error {
	return r.t.Delete(id, check)
}
