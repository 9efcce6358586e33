package domain

import "strings"

// Role is the acting user's role as supplied by the authentication layer.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole normalizes a role claim. Unknown or empty values degrade to viewer.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor:
		return RoleEditor
	default:
		return RoleViewer
	}
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// ActingUser identifies who performs an operation.
type ActingUser struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// Capabilities is the set of actions a role may take on one calendar date.
type Capabilities struct {
	CanRead   bool `json:"canRead"`
	CanWrite  bool `json:"canWrite"`
	CanToggle bool `json:"canToggle"` // expand/collapse the date group in the UI
}

// CanWrite is the single access-window rule for ledger writes:
// viewers never write, admins write any date, everyone else only today.
func CanWrite(role Role, date, today Date) bool {
	switch role {
	case RoleViewer:
		return false
	case RoleAdmin:
		return true
	default:
		return date.Equal(today)
	}
}

// CapabilitiesFor returns the capability row for (role, date).
// Reading is universal; toggling mirrors the write gate except that admins
// may always toggle.
func CapabilitiesFor(role Role, date, today Date) Capabilities {
	write := CanWrite(role, date, today)
	return Capabilities{
		CanRead:   true,
		CanWrite:  write,
		CanToggle: write || role.IsAdmin(),
	}
}
