package user

import (
	"context"

	"github.com/MikeMC777/ordenes-saga/internal/store"
)

type Repository interface {
	GetByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id int, fn func(cur User) (User, error)) (*User, error)
	Delete(ctx context.Context, id int, check func(cur User) error) error
}

// MemRepo keeps users in a store.Table owned by this process.
type MemRepo struct{ t *store.Table[User] }

func NewMemRepo() *MemRepo { return &MemRepo{t: store.NewTable[User]()} }

func (r *MemRepo) GetByID(_ context.Context, id int) (*User, error) {
	u, err := r.t.Get(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MemRepo) Create(_ context.Context, u *User) error {
	return r.t.Insert(u.ID, *u)
}

func (r *MemRepo) Update(_ context.Context, id int, fn func(cur User) (User, error)) (*User, error) {
	u, err := r.t.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MemRepo) Delete(_ context.Context, id int, check func(cur User) error) error {
	return r.t.Delete(id, check)
}
