package domain

import "time"

// Role is the closed set of roles the permission matrix is defined over.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the resolved, trusted identity of the current caller. It is
// built from a store lookup, never from caller-supplied data, and lives only
// for the duration of one request.
type Principal struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
	Role  Role    `json:"role"`
}

// Session is what the session provider vouches for: a reference to an
// identity plus validity bounds. The token format behind it is opaque to the
// authorization core.
type Session struct {
	IdentityRef string
	TokenID     string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// User is the durable identity record backing a Principal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PrincipalOf builds the request-scoped Principal view of a user record.
// An absent image is normalized to nil rather than an empty-string sentinel.
func PrincipalOf(u *User) *Principal {
	p := &Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.Image != "" {
		img := u.Image
		p.Image = &img
	}
	return p
}
