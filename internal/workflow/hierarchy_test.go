package workflow

import (
	"testing"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestEligibleTargets(t *testing.T) {
	testCases := []struct {
		name  string
		op    Operation
		actor domain.Role
		want  []domain.Role
	}{
		{"văn thư gán", OpAssign, domain.RoleSecretary, []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy}},
		{"quản trị viên gán như văn thư", OpAssign, domain.RoleAdmin, []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy}},
		{"trưởng không được gán", OpAssign, domain.RoleTeamLeader, nil},
		{"cán bộ không được gán", OpAssign, domain.RoleOfficer, nil},
		{"trưởng ủy quyền", OpDelegate, domain.RoleTeamLeader, []domain.Role{domain.RoleDeputy, domain.RoleOfficer}},
		{"phó ủy quyền", OpDelegate, domain.RoleDeputy, []domain.Role{domain.RoleOfficer}},
		{"cán bộ không được ủy quyền", OpDelegate, domain.RoleOfficer, nil},
		{"văn thư không được ủy quyền", OpDelegate, domain.RoleSecretary, nil},
		{"trưởng chuyển tiếp", OpForward, domain.RoleTeamLeader, []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer}},
		{"phó chuyển tiếp", OpForward, domain.RoleDeputy, []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer}},
		{"cán bộ chuyển tiếp", OpForward, domain.RoleOfficer, []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy}},
		{"thao tác không có bảng", OpEdit, domain.RoleSecretary, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EligibleTargets(tc.op, tc.actor))
		})
	}
}

func TestAdminIsNeverATarget(t *testing.T) {
	for op, targetsByRole := range hierarchyTable {
		for actor, targets := range targetsByRole {
			require.NotContains(t, targets, domain.RoleAdmin,
				"thao tác %s của %s không được phép nhắm đến Quản trị viên", op, actor)
		}
	}
}
