package types

import "strings"

// UserRole represents the different user roles in the system
type UserRole string

const (
	RoleClinicalStaff    UserRole = "CLINICAL_STAFF"
	RoleAdministrator    UserRole = "ADMINISTRATOR"
	RoleMHAAdministrator UserRole = "MHA_ADMINISTRATOR"
	RoleSystemAdmin      UserRole = "SYSTEM_ADMIN"
)

// DefaultUserRole is substituted when a stored role value is not recognized
const DefaultUserRole = RoleClinicalStaff

// ParseUserRole parses a stored role value. Parsing is case-insensitive and
// tolerates surrounding whitespace. The second return value reports whether
// the input named a known role; callers substitute DefaultUserRole when it
// did not.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleClinicalStaff:
		return RoleClinicalStaff, true
	case RoleAdministrator:
		return RoleAdministrator, true
	case RoleMHAAdministrator:
		return RoleMHAAdministrator, true
	case RoleSystemAdmin:
		return RoleSystemAdmin, true
	}
	return DefaultUserRole, false
}

// User represents a system user. Passwords are stored and compared in plain
// text; this mirrors the legacy store format and is a documented non-goal.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"-"`
	Role        UserRole `json:"role"`
	FullName    string   `json:"full_name"`
	ContactInfo string   `json:"contact_info,omitempty"`
}

// NewUser creates a user with the required fields set
func NewUser(id, username, password string, role UserRole, fullName string) *User {
	return &User{
		ID:       id,
		Username: username,
		Password: password,
		Role:     role,
		FullName: fullName,
	}
}

// Credentials represents user login credentials
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthToken represents an authentication token response
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
