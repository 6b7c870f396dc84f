// Package authz is an explicit capability check: a role and an action in, a
// yes/no out. Handlers receive the role from the authenticated request and
// ask before mutating anything, instead of reading ambient state.
package authz

// Role is an operator role as stored on the admin account.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleViewer     Role = "viewer"
)

// Action is something an operator can attempt through the API.
type Action string

const (
	ActionManagePlans       Action = "plans.manage"
	ActionManageInvestments Action = "investments.manage"
	ActionRecordPayments    Action = "payments.record"
	ActionManageDocuments   Action = "documents.manage"
	ActionManageInvestors   Action = "investors.manage"
	ActionAddRemarks        Action = "remarks.add"
	ActionManageAdmins      Action = "admins.manage"
)

var grants = map[Role]map[Action]bool{
	RoleSuperAdmin: {
		ActionManagePlans:       true,
		ActionManageInvestments: true,
		ActionRecordPayments:    true,
		ActionManageDocuments:   true,
		ActionManageInvestors:   true,
		ActionAddRemarks:        true,
		ActionManageAdmins:      true,
	},
	RoleAdmin: {
		ActionManagePlans:       true,
		ActionManageInvestments: true,
		ActionRecordPayments:    true,
		ActionManageDocuments:   true,
		ActionManageInvestors:   true,
		ActionAddRemarks:        true,
	},
	RoleViewer: {
		ActionAddRemarks: true,
	},
}

// Can reports whether role may perform action. Unknown roles and unknown
// actions are denied.
func Can(role Role, action Action) bool {
	return grants[role][action]
}
