package workflow

// Operation là một thao tác trên công việc mà engine có thể xử lý.
type Operation string

const (
	OpAssign          Operation = "assign"
	OpDelegate        Operation = "delegate"
	OpForward         Operation = "forward"
	OpSubmitForReview Operation = "submit_for_review"
	OpReviewApprove   Operation = "review_approve"
	OpReviewReject    Operation = "review_reject"
	OpEdit            Operation = "edit"
	OpDelete          Operation = "delete"
)

var allOperations = map[Operation]bool{
	OpAssign:          true,
	OpDelegate:        true,
	OpForward:         true,
	OpSubmitForReview: true,
	OpReviewApprove:   true,
	OpReviewReject:    true,
	OpEdit:            true,
	OpDelete:          true,
}

// RequiresTarget cho biết thao tác có bắt buộc phải chỉ định người nhận hay không.
func (op Operation) RequiresTarget() bool {
	return op == OpAssign || op == OpDelegate || op == OpForward
}

// MaxNoteLength là độ dài tối đa của ghi chú kèm theo một thao tác.
const MaxNoteLength = 500

type Request struct {
	Operation    Operation `json:"operation"`
	ActorID      int64     `json:"actorID"`
	TaskID       int64     `json:"taskID"`
	TargetUserID *int64    `json:"targetUserID"`
	Note         string    `json:"note"`
}
