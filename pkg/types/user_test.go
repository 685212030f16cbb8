package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		input string
		want  UserRole
		known bool
	}{
		{"CLINICAL_STAFF", RoleClinicalStaff, true},
		{"clinical_staff", RoleClinicalStaff, true},
		{"  Administrator  ", RoleAdministrator, true},
		{"MHA_ADMINISTRATOR", RoleMHAAdministrator, true},
		{"SYSTEM_ADMIN", RoleSystemAdmin, true},
		{"WIZARD", DefaultUserRole, false},
		{"", DefaultUserRole, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := ParseUserRole(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestNewUserDefaults(t *testing.T) {
	user := NewUser("USER001", "doctor1", "password123", RoleClinicalStaff, "Dr. Sarah Johnson")

	assert.Equal(t, "USER001", user.ID)
	assert.Equal(t, RoleClinicalStaff, user.Role)
	assert.Empty(t, user.ContactInfo)
}
