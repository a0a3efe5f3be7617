package workflow

import (
	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

func isAssignee(task *domain.Task, userID int64) bool {
	return task.AssignedToID != nil && *task.AssignedToID == userID
}

// authorize kiểm tra actor có được phép thực hiện thao tác trên công việc hay
// không. target là nil đối với các thao tác không có người nhận. Các điều
// kiện về trạng thái của SubmitForReview và Delete nằm ở bảng chuyển trạng
// thái để lỗi trả về là InvalidTransition thay vì Forbidden.
func authorize(req Request, actor *domain.User, task *domain.Task, target *domain.User) *Error {
	switch req.Operation {
	case OpAssign:
		switch actor.Role {
		case domain.RoleSecretary, domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleAdmin:
		default:
			return forbidden(ReasonRoleNotPermitted, "vai trò của bạn không được phép gán công việc")
		}
		// Văn thư và Quản trị viên được gán lại bất kể trạng thái, các vai
		// trò khác chỉ được gán khi công việc chưa bắt đầu.
		if task.Status != domain.StatusNotStarted && actor.Role != domain.RoleSecretary && actor.Role != domain.RoleAdmin {
			return forbidden(ReasonWrongStatus, "chỉ được gán công việc khi công việc chưa bắt đầu")
		}
		if !canTarget(OpAssign, actor.Role, target.Role) {
			return forbidden(ReasonRoleNotPermitted, "không thể gán công việc cho vai trò này")
		}

	case OpDelegate:
		if actor.Role != domain.RoleTeamLeader && actor.Role != domain.RoleDeputy {
			return forbidden(ReasonRoleNotPermitted, "vai trò của bạn không được phép ủy quyền công việc")
		}
		if !isAssignee(task, actor.ID) {
			return forbidden(ReasonNotOwner, "chỉ có thể ủy quyền công việc được gán cho mình")
		}
		if isAssignee(task, target.ID) {
			return forbidden(ReasonSelfTarget, "không thể ủy quyền cho người đang xử lý công việc")
		}
		if !canTarget(OpDelegate, actor.Role, target.Role) {
			return forbidden(ReasonRoleNotPermitted, "không thể ủy quyền cho vai trò này")
		}

	case OpForward:
		switch actor.Role {
		case domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer:
		default:
			return forbidden(ReasonRoleNotPermitted, "vai trò của bạn không được phép chuyển tiếp công việc")
		}
		if !isAssignee(task, actor.ID) && task.CreatedByID != actor.ID {
			return forbidden(ReasonNotOwner, "chỉ người xử lý hoặc người tạo mới được chuyển tiếp công việc")
		}
		if isAssignee(task, target.ID) || target.ID == actor.ID {
			return forbidden(ReasonSelfTarget, "không thể chuyển tiếp công việc cho người đang xử lý")
		}
		if !canTarget(OpForward, actor.Role, target.Role) {
			return forbidden(ReasonRoleNotPermitted, "không thể chuyển tiếp cho vai trò này")
		}

	case OpSubmitForReview:
		if actor.Role != domain.RoleOfficer {
			return forbidden(ReasonRoleNotPermitted, "chỉ Cán bộ mới được gửi báo cáo xem xét")
		}
		if !isAssignee(task, actor.ID) {
			return forbidden(ReasonNotOwner, "chỉ người được gán công việc mới được gửi báo cáo xem xét")
		}

	case OpReviewApprove, OpReviewReject:
		// Người duyệt là Trưởng hoặc Phó, hoặc chính người tạo công việc.
		switch actor.Role {
		case domain.RoleTeamLeader, domain.RoleDeputy:
		default:
			if task.CreatedByID != actor.ID {
				return forbidden(ReasonRoleNotPermitted, "vai trò của bạn không được phép xem xét công việc")
			}
		}

	case OpEdit:
		switch actor.Role {
		case domain.RoleSecretary:
		case domain.RoleTeamLeader:
			if task.CreatedByID != actor.ID && !isAssignee(task, actor.ID) {
				return forbidden(ReasonNotOwner, "không có quyền chỉnh sửa công việc này")
			}
		default:
			return forbidden(ReasonRoleNotPermitted, "không có quyền chỉnh sửa công việc")
		}

	case OpDelete:
		switch actor.Role {
		case domain.RoleSecretary:
		case domain.RoleTeamLeader:
			if task.CreatedByID != actor.ID {
				return forbidden(ReasonNotOwner, "chỉ được xóa công việc do chính mình tạo")
			}
		default:
			return forbidden(ReasonRoleNotPermitted, "không có quyền xóa công việc")
		}
	}

	return nil
}
