package product

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MikeMC777/ordenes-saga/internal/store"
)

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) Fetch(ctx context.Context, id int) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Mutate applies a create, update or delete command. Delete returns a nil
// product on success.
func (s *Service) Mutate(ctx context.Context, body []byte) (*Product, error) {
	cmd, id, err := store.ParseEnvelope(body)
	if err != nil {
		return nil, err
	}
	var in MutateRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}

	switch cmd {
	case store.CommandCreate:
		return s.create(ctx, id, in)
	case store.CommandUpdate:
		return s.update(ctx, id, in)
	default:
		return nil, s.delete(ctx, id, in)
	}
}

func (s *Service) create(ctx context.Context, id int, in MutateRequest) (*Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err == nil {
		return nil, store.ErrConflict
	}
	if in.Name == nil || in.Description == nil || in.Price == nil || in.Quantity == nil {
		return nil, fmt.Errorf("%w: name, description, price and quantity are required", store.ErrInvalid)
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	p := &Product{
		ID:          id,
		Name:        *in.Name,
		Description: *in.Description,
		Price:       in.Price.Round(2),
		Quantity:    *in.Quantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", "id", id, "quantity", p.Quantity)
	return p, nil
}

func (s *Service) update(ctx context.Context, id int, in MutateRequest) (*Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, func(cur Product) (Product, error) {
		if in.Name != nil {
			cur.Name = *in.Name
		}
		if in.Description != nil {
			cur.Description = *in.Description
		}
		if in.Price != nil {
			cur.Price = in.Price.Round(2)
		}
		if in.Quantity != nil {
			cur.Quantity = *in.Quantity
		}
		return cur, nil
	})
}

// delete removes the product only when name, price and quantity all match.
func (s *Service) delete(ctx context.Context, id int, in MutateRequest) error {
	missing := in.Name == nil || in.Price == nil || in.Quantity == nil
	err := s.repo.Delete(ctx, id, func(cur Product) error {
		if missing {
			return fmt.Errorf("%w: name, price and quantity are required", store.ErrInvalid)
		}
		if *in.Name != cur.Name || *in.Quantity != cur.Quantity ||
			in.Price.Sub(cur.Price).Abs().GreaterThanOrEqual(PriceTolerance) {
			return store.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("product deleted", "id", id)
	return nil
}

// validate checks every supplied field; the first bad one rejects the request.
func validate(in MutateRequest) error {
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("%w: name must not be empty", store.ErrInvalid)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", store.ErrInvalid)
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", store.ErrInvalid)
	}
	return nil
}
