package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// Syntactic check only; deliverability is not this service's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	reasonEmailRequired = "email is required"
	reasonNotAuthorized = "this email is not authorized to register — contact an administrator"
	reasonCheckFailed   = "authorization check failed, try again later"
)

// AllowlistService implements the pre-registration email gate and its
// admin-only maintenance operations. Route-level admin gating is done by the
// guard middleware; this service trusts its callers on that.
type AllowlistService struct {
	repo ports.AllowlistRepository
	log  zerolog.Logger
}

func NewAllowlistService(repo ports.AllowlistRepository, log zerolog.Logger) *AllowlistService {
	return &AllowlistService{repo: repo, log: log}
}

// AuthorizeEmailForRegistration decides whether rawEmail may create an
// account. Invoked by the registration flow immediately before the identity
// record is persisted; a false decision is a hard stop. Every failure mode
// (missing input, allow-list miss, store error) denies. The store-error case
// is distinguishable by reason and logged for audit, but never allows.
func (s *AllowlistService) AuthorizeEmailForRegistration(ctx context.Context, rawEmail string) domain.RegistrationDecision {
	email := domain.NormalizeEmail(rawEmail)
	if email == "" {
		return domain.RegistrationDecision{Reason: reasonEmailRequired, Kind: domain.ErrValidation}
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.RegistrationDecision{Authorized: true}
	case errors.Is(err, domain.ErrNotFound):
		s.log.Warn().Str("email", email).Msg("registration attempt by unlisted email")
		return domain.RegistrationDecision{Reason: reasonNotAuthorized, Kind: domain.ErrForbidden}
	default:
		s.log.Error().Err(err).Str("email", email).Msg("allow-list lookup failed, denying registration")
		return domain.RegistrationDecision{Reason: reasonCheckFailed, Kind: domain.ErrInternal}
	}
}

// Add inserts a new allow-list entry. The email must be syntactically valid;
// a duplicate (after normalization) is ErrConflict, surfaced to the admin as
// "already authorized".
func (s *AllowlistService) Add(ctx context.Context, rawEmail string) (*domain.AllowlistEntry, error) {
	email := domain.NormalizeEmail(rawEmail)
	if email == "" {
		return nil, domain.E(domain.ErrValidation, reasonEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.E(domain.ErrValidation, "malformed email address")
	}

	entry, err := s.repo.Create(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.E(domain.ErrConflict, "email already authorized")
		}
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("email added to registration allow-list")
	return entry, nil
}

// Remove deletes an allow-list entry. Removing an email that is not listed
// is ErrNotFound, not a silent success.
func (s *AllowlistService) Remove(ctx context.Context, rawEmail string) error {
	email := domain.NormalizeEmail(rawEmail)
	if email == "" {
		return domain.E(domain.ErrValidation, reasonEmailRequired)
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.ErrNotFound, "email not in allow-list")
		}
		return err
	}

	s.log.Info().Str("email", email).Msg("email removed from registration allow-list")
	return nil
}

func (s *AllowlistService) List(ctx context.Context) ([]domain.AllowlistEntry, error) {
	return s.repo.List(ctx)
}
