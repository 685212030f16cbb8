package iam

import "github.com/mentcare/records/pkg/types"

// Permission names used by the presentation layer to gate panels
const (
	PermViewPatients        = "view_patients"
	PermEditPatients        = "edit_patients"
	PermPrescribeMedication = "prescribe_medication"
	PermManageAppointments  = "manage_appointments"
	PermGenerateReports     = "generate_reports"
	PermManageMHA           = "manage_mha"
)

// permissionMatrix maps each role to its static permission set. SYSTEM_ADMIN
// matches everything via the wildcard.
var permissionMatrix = map[types.UserRole][]string{
	types.RoleClinicalStaff: {
		PermViewPatients,
		PermEditPatients,
		PermPrescribeMedication,
	},
	types.RoleAdministrator: {
		PermViewPatients,
		PermManageAppointments,
		PermGenerateReports,
	},
	types.RoleMHAAdministrator: {
		PermViewPatients,
		PermManageMHA,
	},
	types.RoleSystemAdmin: {
		"*",
	},
}

// HasPermission reports whether the role grants the named permission
func HasPermission(role types.UserRole, permission string) bool {
	for _, p := range permissionMatrix[role] {
		if p == permission || p == "*" {
			return true
		}
	}
	return false
}

// Permissions returns the permission set for a role
func Permissions(role types.UserRole) []string {
	perms, ok := permissionMatrix[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
