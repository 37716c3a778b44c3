package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// AllowlistRepository persists the registration email allow-list. All emails
// crossing this interface are already normalized (domain.NormalizeEmail);
// the store enforces uniqueness on the normalized value. FindByEmail returns
// domain.ErrNotFound on a miss, Create returns domain.ErrConflict on a
// duplicate, Delete returns domain.ErrNotFound when nothing was removed.
type AllowlistRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AllowlistEntry, error)
	Create(ctx context.Context, email string) (*domain.AllowlistEntry, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.AllowlistEntry, error)
}
