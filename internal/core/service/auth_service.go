package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// AuthService implements registration, login and logout. Registration is
// gated by the email allow-list: the gate runs before the identity record is
// written, and a negative decision aborts the whole flow.
type AuthService struct {
	identities ports.IdentityRepository
	gate       ports.AllowlistService
	sessions   ports.SessionIssuer
	log        zerolog.Logger
}

func NewAuthService(identities ports.IdentityRepository, gate ports.AllowlistService, sessions ports.SessionIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{identities: identities, gate: gate, sessions: sessions, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.E(domain.ErrValidation, "email and password are required")
	}

	decision := s.gate.AuthorizeEmailForRegistration(ctx, email)
	if !decision.Authorized {
		return nil, domain.E(decision.Kind, decision.Reason)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.identities.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.E(domain.ErrConflict, "account already exists")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("account registered")
	return created, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.E(domain.ErrUnauthorized, "invalid credentials")
	}

	user, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.E(domain.ErrUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.E(domain.ErrUnauthorized, "invalid credentials")
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes the presented session. Revoking an already-invalid token is
// a no-op success.
func (s *AuthService) Logout(ctx context.Context, credentials string) error {
	if credentials == "" {
		return domain.E(domain.ErrUnauthorized, "missing credentials")
	}
	return s.sessions.Revoke(ctx, credentials)
}
