package domain

import "time"

// TaskStatusHistory là sổ lịch sử của công việc: chỉ được thêm vào, không bao
// giờ được sửa hoặc xóa. OldStatus là nil đối với bản ghi đầu tiên khi tạo
// công việc.
type TaskStatusHistory struct {
	ID              int64       `json:"id"`
	TaskID          int64       `json:"taskID"`
	OldStatus       *TaskStatus `json:"oldStatus"`
	NewStatus       TaskStatus  `json:"newStatus"`
	ChangedByID     int64       `json:"changedByID"`
	Note            string      `json:"note"`
	AssigneeChanged bool        `json:"assigneeChanged"`
	CreatedAt       time.Time   `json:"createdAt"`
}
