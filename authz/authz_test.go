package authz

import "testing"

func TestCan(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleSuperAdmin, ActionManageAdmins, true},
		{RoleSuperAdmin, ActionManagePlans, true},
		{RoleAdmin, ActionManagePlans, true},
		{RoleAdmin, ActionRecordPayments, true},
		{RoleAdmin, ActionManageAdmins, false},
		{RoleViewer, ActionAddRemarks, true},
		{RoleViewer, ActionManagePlans, false},
		{RoleViewer, ActionRecordPayments, false},
		{Role("intern"), ActionAddRemarks, false},
		{RoleAdmin, Action("unknown.action"), false},
	}
	for _, tt := range tests {
		if got := Can(tt.role, tt.action); got != tt.want {
			t.Errorf("Can(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}
