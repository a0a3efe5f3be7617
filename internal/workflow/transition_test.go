package workflow

import (
	"testing"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	testCases := []struct {
		name        string
		op          Operation
		current     domain.TaskStatus
		hasAssignee bool
		want        domain.TaskStatus
		wantErr     bool
	}{
		{"gán lần đầu", OpAssign, domain.StatusNotStarted, false, domain.StatusReceived, false},
		{"gán lại giữ nguyên trạng thái", OpAssign, domain.StatusInProgress, true, domain.StatusInProgress, false},
		{"gán lại khi đang xem xét", OpAssign, domain.StatusUnderReview, true, domain.StatusUnderReview, false},
		{"ủy quyền khi mới tiếp nhận", OpDelegate, domain.StatusReceived, true, domain.StatusInProgress, false},
		{"ủy quyền khi đang xử lí", OpDelegate, domain.StatusInProgress, true, domain.StatusInProgress, false},
		{"ủy quyền khi chưa bắt đầu", OpDelegate, domain.StatusNotStarted, false, "", true},
		{"ủy quyền khi đang xem xét", OpDelegate, domain.StatusUnderReview, true, "", true},
		{"chuyển tiếp khi tiếp nhận", OpForward, domain.StatusReceived, true, domain.StatusReceived, false},
		{"chuyển tiếp khi đang xử lí", OpForward, domain.StatusInProgress, true, domain.StatusInProgress, false},
		{"chuyển tiếp khi đang xem xét", OpForward, domain.StatusUnderReview, true, "", true},
		{"gửi xem xét", OpSubmitForReview, domain.StatusInProgress, true, domain.StatusUnderReview, false},
		{"gửi xem xét khi chưa xử lí", OpSubmitForReview, domain.StatusReceived, true, "", true},
		{"duyệt", OpReviewApprove, domain.StatusUnderReview, true, domain.StatusCompleted, false},
		{"duyệt khi chưa gửi", OpReviewApprove, domain.StatusInProgress, true, "", true},
		{"trả lại", OpReviewReject, domain.StatusUnderReview, true, domain.StatusInProgress, false},
		{"chỉnh sửa không đổi trạng thái", OpEdit, domain.StatusReceived, true, domain.StatusReceived, false},
		{"xóa khi chưa hoàn thành", OpDelete, domain.StatusUnderReview, true, domain.StatusUnderReview, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextStatus(tc.op, tc.current, tc.hasAssignee)
			if tc.wantErr {
				require.NotNil(t, err)
				require.Equal(t, KindInvalidTransition, err.Kind)
				require.Equal(t, tc.current, err.Current)
				require.Equal(t, tc.op, err.Attempted)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCompletedIsTerminalForEveryOperation(t *testing.T) {
	for op := range allOperations {
		t.Run(string(op), func(t *testing.T) {
			_, err := nextStatus(op, domain.StatusCompleted, true)
			require.NotNil(t, err)
			require.Equal(t, KindInvalidTransition, err.Kind)
		})
	}
}
