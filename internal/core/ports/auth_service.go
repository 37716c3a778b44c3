package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, credentials string) error
}

// AllowlistService is the registration gate plus its admin-only maintenance
// operations.
type AllowlistService interface {
	AuthorizeEmailForRegistration(ctx context.Context, rawEmail string) domain.RegistrationDecision
	Add(ctx context.Context, rawEmail string) (*domain.AllowlistEntry, error)
	Remove(ctx context.Context, rawEmail string) error
	List(ctx context.Context) ([]domain.AllowlistEntry, error)
}
