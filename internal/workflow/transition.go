package workflow

import (
	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

// nextStatus tính trạng thái tiếp theo của công việc theo bảng chuyển trạng
// thái. Mọi tổ hợp không có trong bảng đều là lỗi, không bị bỏ qua âm thầm.
// "Hoàn thành" là trạng thái kết thúc: không thao tác nào thoát ra được khỏi
// nó, kể cả khi thứ tự gọi bị sai.
func nextStatus(op Operation, current domain.TaskStatus, hasAssignee bool) (domain.TaskStatus, *Error) {
	if current == domain.StatusCompleted {
		return "", invalidTransition(current, op)
	}

	switch op {
	case OpAssign:
		if current == domain.StatusNotStarted {
			return domain.StatusReceived, nil
		}
		// Gán lại: người xử lý thay đổi, trạng thái giữ nguyên.
		if hasAssignee {
			return current, nil
		}
		return "", invalidTransition(current, op)

	case OpDelegate:
		switch current {
		case domain.StatusReceived:
			// Ủy quyền có thể đồng thời bắt đầu xử lý.
			return domain.StatusInProgress, nil
		case domain.StatusInProgress:
			return domain.StatusInProgress, nil
		}
		return "", invalidTransition(current, op)

	case OpForward:
		switch current {
		case domain.StatusReceived, domain.StatusInProgress:
			return current, nil
		}
		return "", invalidTransition(current, op)

	case OpSubmitForReview:
		if current == domain.StatusInProgress {
			return domain.StatusUnderReview, nil
		}
		return "", invalidTransition(current, op)

	case OpReviewApprove:
		if current == domain.StatusUnderReview {
			return domain.StatusCompleted, nil
		}
		return "", invalidTransition(current, op)

	case OpReviewReject:
		if current == domain.StatusUnderReview {
			return domain.StatusInProgress, nil
		}
		return "", invalidTransition(current, op)

	case OpEdit, OpDelete:
		return current, nil
	}

	return "", invalidTransition(current, op)
}
