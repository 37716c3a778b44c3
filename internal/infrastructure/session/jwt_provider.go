package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// RevocationStore is the denylist consulted on every session lookup so that
// logout takes effect immediately. Entries only need to live as long as the
// token they revoke.
type RevocationStore interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// JWTProvider implements the session provider and issuer ports with HS256
// tokens. The token carries only a reference to the identity (sub) and a
// token id (jti) for revocation; role and profile data are looked up fresh
// on every request by the identity resolver.
type JWTProvider struct {
	secret      []byte
	ttl         time.Duration
	revocations RevocationStore
}

func NewJWTProvider(secret string, ttl time.Duration, revocations RevocationStore) *JWTProvider {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTProvider{secret: []byte(secret), ttl: ttl, revocations: revocations}
}

// Issue signs a session token for the given user.
func (p *JWTProvider) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"jti": newTokenID(),
		"iat": now.Unix(),
		"exp": now.Add(p.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// GetSession validates the presented token. Malformed, expired and revoked
// tokens all yield (nil, nil), "no valid session", so the caller cannot
// distinguish them and treats each as unauthenticated. Only a revocation
// store failure returns an error, and that error denies upstream.
func (p *JWTProvider) GetSession(ctx context.Context, credentials string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credentials, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, nil
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, nil
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && p.revocations != nil {
		revoked, err := p.revocations.IsRevoked(ctx, jti)
		if err != nil {
			return nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return nil, nil
		}
	}

	sess := &domain.Session{IdentityRef: sub, TokenID: jti}
	if iat, ok := claims["iat"].(float64); ok {
		sess.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claims["exp"].(float64); ok {
		sess.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return sess, nil
}

// Revoke denylists the token until its natural expiry. An already-invalid
// token needs no revocation and succeeds silently.
func (p *JWTProvider) Revoke(ctx context.Context, credentials string) error {
	sess, err := p.GetSession(ctx, credentials)
	if err != nil {
		return err
	}
	if sess == nil || sess.TokenID == "" || p.revocations == nil {
		return nil
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return p.revocations.Revoke(ctx, sess.TokenID, ttl)
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
