package workflow

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

// TaskStore nạp và lưu công việc. Store phải đảm bảo đọc-rồi-ghi nguyên tử
// trên từng công việc (khóa dòng hoặc so sánh version). Hai phương thức ghi
// đều nhận kèm bản ghi lịch sử và phải ghi cả hai trong cùng một transaction:
// hoặc công việc lẫn sổ lịch sử cùng thay đổi, hoặc không có gì thay đổi.
type TaskStore interface {
	Load(ctx context.Context, id int64) (*domain.Task, error)
	SaveWithHistory(ctx context.Context, task *domain.Task, entry *domain.TaskStatusHistory) error
	DeleteWithHistory(ctx context.Context, id int64, entry *domain.TaskStatusHistory) error
}

// HistoryStore ghi sổ lịch sử của công việc.
type HistoryStore interface {
	Append(ctx context.Context, entry *domain.TaskStatusHistory) error
	ListByTask(ctx context.Context, taskID int64) ([]*domain.TaskStatusHistory, error)
}

// UserDirectory tra cứu vai trò và trạng thái hoạt động của người dùng.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// Engine điều phối một thao tác trên công việc: kiểm tra quyền, kiểm tra
// chuyển trạng thái, rồi mới cập nhật công việc và ghi sổ lịch sử. Engine là
// thành phần duy nhất được phép thay đổi Status và AssignedToID của công
// việc. Các thao tác trên cùng một công việc được tuần tự hóa bằng khóa theo
// từng công việc.
type Engine struct {
	tasks   TaskStore
	history HistoryStore
	users   UserDirectory
	now     func() time.Time

	taskLocks sync.Map // taskID -> *sync.Mutex
}

func NewEngine(tasks TaskStore, history HistoryStore, users UserDirectory) *Engine {
	return &Engine{
		tasks:   tasks,
		history: history,
		users:   users,
		now:     time.Now,
	}
}

type Result struct {
	Task    *domain.Task              `json:"task"`
	History *domain.TaskStatusHistory `json:"history"`
	Deleted bool                      `json:"deleted"`
}

func (e *Engine) lockTask(taskID int64) *sync.Mutex {
	mu, _ := e.taskLocks.LoadOrStore(taskID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func validateRequest(req Request) *Error {
	if !allOperations[req.Operation] {
		return validation("thao tác không hợp lệ")
	}
	if req.Operation.RequiresTarget() && req.TargetUserID == nil {
		return validation("thao tác này bắt buộc phải chỉ định người nhận")
	}
	if len([]rune(req.Note)) > MaxNoteLength {
		return validation("ghi chú không được vượt quá 500 ký tự")
	}
	return nil
}

// Execute thực hiện một thao tác trọn vẹn hoặc không làm gì cả: mọi lỗi trả
// về trước bước cập nhật đều đảm bảo không có thay đổi nào được ghi nhận.
func (e *Engine) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	mu := e.lockTask(req.TaskID)
	mu.Lock()
	defer mu.Unlock()

	task, err := e.tasks.Load(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("không tìm thấy công việc")
		}
		return nil, err
	}

	actor, err := e.users.GetUser(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("không tìm thấy người thực hiện")
		}
		return nil, err
	}
	if !actor.IsActive {
		return nil, inactive("tài khoản của người thực hiện đã bị vô hiệu hóa")
	}

	var target *domain.User
	if req.Operation.RequiresTarget() {
		target, err = e.users.GetUser(ctx, *req.TargetUserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, notFound("không tìm thấy người nhận")
			}
			return nil, err
		}
		if !target.IsActive {
			return nil, inactive("tài khoản của người nhận đã bị vô hiệu hóa")
		}
	}

	if authErr := authorize(req, actor, task, target); authErr != nil {
		return nil, authErr
	}

	next, transErr := nextStatus(req.Operation, task.Status, task.AssignedToID != nil)
	if transErr != nil {
		return nil, transErr
	}

	// Từ đây trở đi mới có thay đổi trạng thái.
	updated := *task
	assigneeChanged := false

	// Chỉ lần giao việc đầu tiên (đưa công việc từ "Chưa bắt đầu" vào vòng
	// đời xử lý) mới ghi OldStatus là nil; các thao tác khác luôn ghi lại
	// trạng thái trước đó, kể cả khi trạng thái đó là "Chưa bắt đầu".
	var oldStatus *domain.TaskStatus
	if req.Operation != OpAssign || task.Status != domain.StatusNotStarted {
		s := task.Status
		oldStatus = &s
	}

	if req.Operation.RequiresTarget() {
		if updated.AssignedToID == nil || *updated.AssignedToID != target.ID {
			assigneeChanged = true
		}
		targetID := target.ID
		updated.AssignedToID = &targetID
	}
	updated.Status = next
	if next == domain.StatusCompleted && updated.CompletionDate == nil {
		now := e.now()
		updated.CompletionDate = &now
	}
	updated.UpdatedAt = e.now()

	// Sổ lịch sử ghi nhận mọi thao tác được chấp nhận, kể cả khi trạng thái
	// không đổi (old == new) để sổ là bản kiểm toán đầy đủ. Bản ghi được
	// lưu trong cùng transaction với công việc: không bao giờ có thay đổi
	// đã lưu mà thiếu dòng lịch sử, hay ngược lại.
	entry := &domain.TaskStatusHistory{
		TaskID:          task.ID,
		OldStatus:       oldStatus,
		NewStatus:       next,
		ChangedByID:     actor.ID,
		Note:            req.Note,
		AssigneeChanged: assigneeChanged,
		CreatedAt:       e.now(),
	}

	switch req.Operation {
	case OpDelete:
		if err := e.tasks.DeleteWithHistory(ctx, task.ID, entry); err != nil {
			return nil, err
		}
	case OpEdit:
		// Edit không thay đổi trạng thái hay người xử lý nên engine không
		// ghi lại công việc, chỉ ghi sổ lịch sử; các trường nội dung do
		// tầng gọi cập nhật sau khi engine cho phép.
		if err := e.history.Append(ctx, entry); err != nil {
			return nil, err
		}
	default:
		if err := e.tasks.SaveWithHistory(ctx, &updated, entry); err != nil {
			return nil, err
		}
	}

	return &Result{
		Task:    &updated,
		History: entry,
		Deleted: req.Operation == OpDelete,
	}, nil
}

// ListHistory trả về sổ lịch sử của công việc theo thứ tự cũ nhất trước.
func (e *Engine) ListHistory(ctx context.Context, taskID int64) ([]*domain.TaskStatusHistory, error) {
	entries, err := e.history.ListByTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("không tìm thấy công việc")
		}
		return nil, err
	}
	return entries, nil
}
