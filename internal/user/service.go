package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MikeMC777/ordenes-saga/internal/store"
)

type Service struct {
	repo Repository
	cost int
	log  *slog.Logger
}

// NewService wires the command service. cost is the bcrypt cost; 0 selects
// bcrypt.DefaultCost.
func NewService(repo Repository, cost int, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, cost: cost, log: log}
}

func (s *Service) Fetch(ctx context.Context, id int) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Mutate applies a create, update or delete command. It returns the stored
// record for create and update, and nil for delete.
func (s *Service) Mutate(ctx context.Context, body []byte) (*User, error) {
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

func (s *Service) create(ctx context.Context, id int, in MutateRequest) (*User, error) {
	if _, err := s.repo.GetByID(ctx, id); err == nil {
		return nil, store.ErrConflict
	}
	if empty(in.Username) || empty(in.Email) || empty(in.Password) {
		return nil, fmt.Errorf("%w: username, email and password are required", store.ErrInvalid)
	}
	hash, err := HashPassword(*in.Password, s.cost)
	if err != nil {
		return nil, err
	}
	u := &User{ID: id, Username: *in.Username, Email: *in.Email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", "id", id)
	return u, nil
}

func (s *Service) update(ctx context.Context, id int, in MutateRequest) (*User, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	fields := []struct {
		name string
		v    *string
	}{{"username", in.Username}, {"email", in.Email}, {"password", in.Password}}
	for _, f := range fields {
		if f.v != nil && *f.v == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", store.ErrInvalid, f.name)
		}
	}
	var hash string
	if in.Password != nil {
		h, err := HashPassword(*in.Password, s.cost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	return s.repo.Update(ctx, id, func(cur User) (User, error) {
		if in.Username != nil {
			cur.Username = *in.Username
		}
		if in.Email != nil {
			cur.Email = *in.Email
		}
		if hash != "" {
			cur.PasswordHash = hash
		}
		return cur, nil
	})
}

// delete removes the user only when username, email and password all match.
func (s *Service) delete(ctx context.Context, id int, in MutateRequest) error {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if in.Username == nil || in.Email == nil || in.Password == nil {
		return fmt.Errorf("%w: username, email and password are required", store.ErrInvalid)
	}
	if *in.Username != cur.Username || *in.Email != cur.Email || !CheckPassword(cur.PasswordHash, *in.Password) {
		return store.ErrUnauthorized
	}

	// The hash was checked outside the table lock; refuse if the record
	// changed in between.
	err = s.repo.Delete(ctx, id, func(now User) error {
		if now != *cur {
			return store.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("user deleted", "id", id)
	return nil
}

func empty(p *string) bool { return p == nil || *p == "" }
