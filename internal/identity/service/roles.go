package service

import (
	"context"
	"errors"

	"github.com/stallworks/identity/internal/identity/domain"
	"github.com/stallworks/identity/internal/identity/store"
	"github.com/stallworks/identity/pkg/idx"
)

// RolesService manages the small fixed set of roles. Roles only tag issued
// token claims; there is no permission engine behind them.
type RolesService struct {
	Store store.Store
}

// EnsureRole returns the role with the given name, creating it if missing.
// Safe to call concurrently: a create that loses the race falls back to
// re-reading the winner's row.
func (s *RolesService) EnsureRole(ctx context.Context, name string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, err
	}

	role = domain.Role{
		ID:   idx.New().String(),
		Name: name,
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Roles().GetRoleByName(ctx, name)
		}
		return domain.Role{}, err
	}

	return role, nil
}
