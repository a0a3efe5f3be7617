package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/caxa-dev/doc-manager/backend/internal/workflow"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
)

// taskView là công việc kèm thông tin thời gian còn lại, chỉ dùng để trả về
// cho client.
type taskView struct {
	*domain.Task
	RemainingTime domain.RemainingTimeInfo `json:"remainingTime"`
}

func newTaskView(task *domain.Task) taskView {
	return taskView{
		Task:          task,
		RemainingTime: task.RemainingTime(time.Now()),
	}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Description        string     `json:"description" validate:"required"`
		IncomingDocumentID *int64     `json:"incomingDocumentID"`
		Deadline           *time.Time `json:"deadline"`
		ProcessingContent  string     `json:"processingContent"`
		ProcessingNotes    string     `json:"processingNotes"`
		Note               string     `json:"note" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	task := &domain.Task{
		Description:        req.Description,
		Status:             domain.StatusNotStarted,
		CreatedByID:        myInfo.ID,
		IncomingDocumentID: req.IncomingDocumentID,
		Deadline:           req.Deadline,
		ProcessingContent:  req.ProcessingContent,
		ProcessingNotes:    req.ProcessingNotes,
	}

	if err := h.repository.CreateTask(r.Context(), task, req.Note); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "tasks_incoming_document_id_fkey":
			h.badRequest(w, r, errors.New("văn bản đến không tồn tại"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "tạo công việc thành công", newTaskView(task))
}

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	tasks, err := h.repository.GetTasksForUser(r.Context(), myInfo.ID, myInfo.Role)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, newTaskView(task))
	}

	h.successResponse(w, r, "lấy danh sách công việc thành công", views)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)
	h.successResponse(w, r, "lấy thông tin công việc thành công", newTaskView(task))
}

func (h *Handler) GetTaskHistory(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	entries, err := h.engine.ListHistory(r.Context(), task.ID)
	if err != nil {
		h.workflowError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy lịch sử công việc thành công", entries)
}

// GetEligibleAssignees liệt kê những người có thể nhận công việc từ người
// đang đăng nhập với thao tác cho trước, dựa trên bảng phân cấp vai trò.
func (h *Handler) GetEligibleAssignees(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	op := workflow.Operation(r.URL.Query().Get("operation"))
	roles := workflow.EligibleTargets(op, myInfo.Role)
	if len(roles) == 0 {
		h.successResponse(w, r, "không có người nhận phù hợp", []*domain.User{})
		return
	}

	users, err := h.repository.GetUsersByRoles(r.Context(), roles)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách người nhận phù hợp thành công", users)
}

type operationRequest struct {
	TargetUserID *int64 `json:"targetUserID"`
	Note         string `json:"note" validate:"max=500"`
}

func (h *Handler) executeOperation(w http.ResponseWriter, r *http.Request, op workflow.Operation, successMsg string) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req operationRequest
	if r.ContentLength > 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	result, err := h.engine.Execute(r.Context(), workflow.Request{
		Operation:    op,
		ActorID:      myInfo.ID,
		TaskID:       task.ID,
		TargetUserID: req.TargetUserID,
		Note:         req.Note,
	})
	if err != nil {
		h.workflowError(w, r, err)
		return
	}

	if result.History.AssigneeChanged {
		h.notifyAssignee(r, myInfo, result.Task, req.Note)
	}

	h.successResponse(w, r, successMsg, result)
}

// notifyAssignee đẩy mail báo công việc mới cho người vừa được gán. Thao tác
// trên công việc đã được ghi nhận nên lỗi gửi mail chỉ được log lại chứ
// không làm thất bại yêu cầu.
func (h *Handler) notifyAssignee(r *http.Request, actor *domain.User, task *domain.Task, note string) {
	if task.AssignedToID == nil {
		return
	}

	assignee, err := h.repository.GetUserByID(r.Context(), *task.AssignedToID)
	if err != nil {
		slog.Error("không lấy được thông tin người nhận để gửi mail", "taskID", task.ID, "error", err)
		return
	}

	deadline := "không có"
	if task.Deadline != nil {
		deadline = task.Deadline.Format("02/01/2006")
	}

	mailMessage := domain.MailMessage{
		Type: "task_assigned",
		To:   assignee.Email,
		Data: domain.TaskAssignedMailData{
			FullName:        assignee.FullName,
			TaskDescription: task.Description,
			AssignedByName:  actor.FullName,
			Deadline:        deadline,
			Note:            note,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("không serialize được mail báo việc", "taskID", task.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		notificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("không đẩy được mail báo việc vào hàng đợi", "taskID", task.ID, "error", err)
	}
}

func (h *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpAssign, "giao việc thành công")
}

func (h *Handler) DelegateTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpDelegate, "phân công thành công")
}

func (h *Handler) ForwardTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpForward, "chuyển tiếp công việc thành công")
}

func (h *Handler) SubmitTaskForReview(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpSubmitForReview, "trình xem xét thành công")
}

func (h *Handler) ApproveTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpReviewApprove, "phê duyệt công việc thành công")
}

func (h *Handler) RejectTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpReviewReject, "trả lại công việc thành công")
}

func (h *Handler) EditTask(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req struct {
		Description        *string    `json:"description"`
		IncomingDocumentID *int64     `json:"incomingDocumentID"`
		Deadline           *time.Time `json:"deadline"`
		ProcessingContent  *string    `json:"processingContent"`
		ProcessingNotes    *string    `json:"processingNotes"`
		Note               string     `json:"note" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Engine chỉ kiểm tra quyền và ghi sổ; các trường nội dung do handler
	// cập nhật sau khi engine cho phép.
	if _, err := h.engine.Execute(r.Context(), workflow.Request{
		Operation: workflow.OpEdit,
		ActorID:   myInfo.ID,
		TaskID:    task.ID,
		Note:      req.Note,
	}); err != nil {
		h.workflowError(w, r, err)
		return
	}

	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.IncomingDocumentID != nil {
		task.IncomingDocumentID = req.IncomingDocumentID
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.ProcessingContent != nil {
		task.ProcessingContent = *req.ProcessingContent
	}
	if req.ProcessingNotes != nil {
		task.ProcessingNotes = *req.ProcessingNotes
	}

	if err := h.repository.UpdateTask(r.Context(), task); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật công việc thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật công việc thành công", newTaskView(task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.executeOperation(w, r, workflow.OpDelete, "xóa công việc thành công")
}
