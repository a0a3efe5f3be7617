package workflow

import (
	"slices"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

// hierarchyTable là nguồn sự thật duy nhất về việc vai trò nào được phép
// nhắm đến vai trò nào cho từng thao tác. Mọi kiểm tra quyền đều tra bảng
// này thay vì so sánh vai trò rải rác ở nhiều nơi. Quản trị viên không bao
// giờ là người nhận công việc nên không xuất hiện ở bất kỳ tập đích nào.
var hierarchyTable = map[Operation]map[domain.Role][]domain.Role{
	OpAssign: {
		domain.RoleSecretary: {domain.RoleTeamLeader, domain.RoleDeputy},
	},
	OpDelegate: {
		domain.RoleTeamLeader: {domain.RoleDeputy, domain.RoleOfficer},
		domain.RoleDeputy:     {domain.RoleOfficer},
	},
	OpForward: {
		domain.RoleTeamLeader: {domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer},
		domain.RoleDeputy:     {domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer},
		domain.RoleOfficer:    {domain.RoleTeamLeader, domain.RoleDeputy},
	},
}

// EligibleTargets trả về các vai trò mà actorRole được phép nhắm đến khi
// thực hiện thao tác op. Quản trị viên dùng chung tập đích với Văn thư khi
// gán công việc.
func EligibleTargets(op Operation, actorRole domain.Role) []domain.Role {
	if op == OpAssign && actorRole == domain.RoleAdmin {
		actorRole = domain.RoleSecretary
	}

	targetsByRole, ok := hierarchyTable[op]
	if !ok {
		return nil
	}

	return slices.Clone(targetsByRole[actorRole])
}

func canTarget(op Operation, actorRole domain.Role, targetRole domain.Role) bool {
	return slices.Contains(EligibleTargets(op, actorRole), targetRole)
}
