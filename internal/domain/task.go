package domain

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	StatusNotStarted  TaskStatus = "Chưa bắt đầu"
	StatusReceived    TaskStatus = "Tiếp nhận văn bản"
	StatusInProgress  TaskStatus = "Đang xử lí"
	StatusUnderReview TaskStatus = "Xem xét"
	StatusCompleted   TaskStatus = "Hoàn thành"
)

type TaskUrgency string

const (
	UrgencyNormal  TaskUrgency = "normal"
	UrgencyMedium  TaskUrgency = "medium"
	UrgencyHigh    TaskUrgency = "high"
	UrgencyUrgent  TaskUrgency = "urgent"
	UrgencyOverdue TaskUrgency = "overdue"
)

type Task struct {
	ID                 int64      `json:"id"`
	Description        string     `json:"description"`
	Status             TaskStatus `json:"status"`
	AssignedToID       *int64     `json:"assignedToID"`
	CreatedByID        int64      `json:"createdByID"`
	IncomingDocumentID *int64     `json:"incomingDocumentID"`
	Deadline           *time.Time `json:"deadline"`
	ProcessingContent  string     `json:"processingContent"`
	ProcessingNotes    string     `json:"processingNotes"`
	CompletionDate     *time.Time `json:"completionDate"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	Version            int32      `json:"-"`
}

// RemainingTimeInfo là thông tin thời gian còn lại của công việc, chỉ dùng để
// hiển thị, không phải là một trạng thái.
type RemainingTimeInfo struct {
	Text      string      `json:"text"`
	IsOverdue bool        `json:"isOverdue"`
	Urgency   TaskUrgency `json:"urgency"`
	Days      int         `json:"days"`
	Hours     int         `json:"hours"`
	Minutes   int         `json:"minutes"`
}

func (t *Task) RemainingTime(now time.Time) RemainingTimeInfo {
	if t.Deadline == nil {
		return RemainingTimeInfo{
			Text:    "Không có hạn",
			Urgency: UrgencyNormal,
		}
	}

	diff := t.Deadline.Sub(now)

	if diff < 0 {
		overdue := -diff
		days := int(overdue.Hours() / 24)
		hours := int(overdue.Hours()) % 24

		var text string
		switch {
		case days > 0:
			text = fmt.Sprintf("Quá hạn %d ngày", days)
		case hours > 0:
			text = fmt.Sprintf("Quá hạn %d giờ", hours)
		default:
			text = "Quá hạn"
		}

		return RemainingTimeInfo{
			Text:      text,
			IsOverdue: true,
			Urgency:   UrgencyOverdue,
			Days:      -days,
			Hours:     -hours,
			Minutes:   -int(overdue.Minutes()) % 60,
		}
	}

	days := int(diff.Hours() / 24)
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	var text string
	var urgency TaskUrgency

	switch {
	case days > 7:
		text = fmt.Sprintf("Còn %d ngày", days)
		urgency = UrgencyNormal
	case days > 3:
		text = fmt.Sprintf("Còn %d ngày", days)
		urgency = UrgencyMedium
	case days > 1:
		text = fmt.Sprintf("Còn %d ngày %d giờ", days, hours)
		urgency = UrgencyHigh
	case days == 1:
		text = fmt.Sprintf("Còn 1 ngày %d giờ", hours)
		urgency = UrgencyUrgent
	case hours > 0:
		text = fmt.Sprintf("Còn %d giờ %d phút", hours, minutes)
		urgency = UrgencyUrgent
	default:
		text = fmt.Sprintf("Còn %d phút", minutes)
		urgency = UrgencyUrgent
	}

	return RemainingTimeInfo{
		Text:    text,
		Urgency: urgency,
		Days:    days,
		Hours:   hours,
		Minutes: minutes,
	}
}
