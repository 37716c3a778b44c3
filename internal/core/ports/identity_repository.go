package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// IdentityRepository is the durable identity store behind principal
// resolution and registration. Lookups return domain.ErrNotFound when no
// record exists; Create returns domain.ErrConflict on a duplicate email
// (uniqueness enforced by the store).
type IdentityRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
