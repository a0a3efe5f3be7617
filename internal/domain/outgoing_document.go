package domain

import "time"

// OutgoingDocumentStatus là trạng thái phê duyệt của văn bản đi. Khác với
// công việc, văn bản đi có vòng đời phê duyệt riêng do người phê duyệt điều
// khiển.
type OutgoingDocumentStatus string

const (
	OutgoingStatusDraft    OutgoingDocumentStatus = "draft"
	OutgoingStatusReview   OutgoingDocumentStatus = "review"
	OutgoingStatusApproved OutgoingDocumentStatus = "approved"
	OutgoingStatusSent     OutgoingDocumentStatus = "sent"
	OutgoingStatusRejected OutgoingDocumentStatus = "rejected"
)

type OutgoingDocument struct {
	ID             int64                  `json:"id"`
	DocumentNumber string                 `json:"documentNumber"`
	IssueDate      time.Time              `json:"issueDate"`
	DocumentTypeID int64                  `json:"documentTypeID"`
	IssuingUnitID  int64                  `json:"issuingUnitID"`
	Summary        string                 `json:"summary"`
	InternalNotes  string                 `json:"internalNotes"`
	DrafterID      int64                  `json:"drafterID"`
	ApproverID     int64                  `json:"approverID"`
	Status         OutgoingDocumentStatus `json:"status"`
	CreatedByID    int64                  `json:"createdByID"`
	CreatedAt      time.Time              `json:"createdAt"`
	Version        int32                  `json:"-"`
}

// IsFinalized báo văn bản đã trở thành hồ sơ chính thức (đã phê duyệt hoặc
// đã gửi); các văn bản này không còn được xóa.
func (d *OutgoingDocument) IsFinalized() bool {
	return d.Status == OutgoingStatusApproved || d.Status == OutgoingStatusSent
}

// RelationshipType mô tả vai trò của văn bản đi đối với công việc: là kết
// quả xử lý, văn bản tham chiếu hay chỉ liên quan.
type RelationshipType string

const (
	RelationshipResult    RelationshipType = "result"
	RelationshipReference RelationshipType = "reference"
	RelationshipRelated   RelationshipType = "related"
)

type TaskOutgoingDocument struct {
	ID                 int64            `json:"id"`
	TaskID             int64            `json:"taskID"`
	OutgoingDocumentID int64            `json:"outgoingDocumentID"`
	RelationshipType   RelationshipType `json:"relationshipType"`
	Notes              string           `json:"notes"`
	CreatedByID        int64            `json:"createdByID"`
	CreatedAt          time.Time        `json:"createdAt"`
}
