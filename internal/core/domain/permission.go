package domain

// Permission is an (action, resource) pair, e.g. ("can:create", "movie").
// The vocabulary of actions and resources is owned by the business handlers;
// here it is only a comparable key into the matrix.
type Permission struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// Action vocabulary used by the catalog.
const (
	ActionCreate = "can:create"
	ActionRead   = "can:read"
	ActionUpdate = "can:update"
	ActionDelete = "can:delete"
)

// Resource vocabulary used by the catalog.
const (
	ResourceMovie    = "movie"
	ResourceGenre    = "genre"
	ResourceFavorite = "favorite"
	ResourceUser     = "user"
)

// permissionMatrix maps every declared role to its permission set. It is
// populated at init and read-only afterwards; lookups for roles outside the
// map deny rather than error.
var permissionMatrix = map[Role]map[Permission]struct{}{
	RoleUser: permissionSet(
		Permission{ActionRead, ResourceMovie},
		Permission{ActionRead, ResourceGenre},
		Permission{ActionRead, ResourceFavorite},
		Permission{ActionCreate, ResourceFavorite},
		Permission{ActionDelete, ResourceFavorite},
	),
	RoleAdmin: permissionSet(
		Permission{ActionRead, ResourceMovie},
		Permission{ActionCreate, ResourceMovie},
		Permission{ActionUpdate, ResourceMovie},
		Permission{ActionDelete, ResourceMovie},
		Permission{ActionRead, ResourceGenre},
		Permission{ActionCreate, ResourceGenre},
		Permission{ActionUpdate, ResourceGenre},
		Permission{ActionDelete, ResourceGenre},
		Permission{ActionRead, ResourceFavorite},
		Permission{ActionCreate, ResourceFavorite},
		Permission{ActionDelete, ResourceFavorite},
		Permission{ActionRead, ResourceUser},
		Permission{ActionUpdate, ResourceUser},
		Permission{ActionDelete, ResourceUser},
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether role holds (action, resource). Unknown roles
// and empty action or resource deny; the function never errors, so a caller
// cannot misread a failure as an allow.
func HasPermission(role Role, action, resource string) bool {
	if action == "" || resource == "" {
		return false
	}
	set, ok := permissionMatrix[role]
	if !ok {
		return false
	}
	_, ok = set[Permission{Action: action, Resource: resource}]
	return ok
}

// PermissionsForRole returns a copy of the role's permission set for
// introspection (UI permission displays). Unknown roles yield an empty
// slice, never nil map internals.
func PermissionsForRole(role Role) []Permission {
	set := permissionMatrix[role]
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	return perms
}
