package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Người soạn thảo phải là Trưởng, Phó hoặc Cán bộ; người phê duyệt phải là
// Trưởng hoặc Phó.
var (
	drafterRoles  = []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy, domain.RoleOfficer}
	approverRoles = []domain.Role{domain.RoleTeamLeader, domain.RoleDeputy}
)

func (h *Handler) lookupUserWithRole(w http.ResponseWriter, r *http.Request, userID int64, roles []domain.Role, label string) (*domain.User, bool) {
	user, err := h.repository.GetUserByID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, label+" không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	for _, role := range roles {
		if user.Role == role {
			return user, true
		}
	}
	h.errorResponse(w, r, label+" không có vai trò phù hợp")
	return nil, false
}

func (h *Handler) CreateOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		DocumentNumber string    `json:"documentNumber" validate:"required"`
		IssueDate      time.Time `json:"issueDate" validate:"required"`
		DocumentTypeID int64     `json:"documentTypeID" validate:"required"`
		IssuingUnitID  int64     `json:"issuingUnitID" validate:"required"`
		Summary        string    `json:"summary" validate:"required"`
		DrafterID      int64     `json:"drafterID" validate:"required"`
		ApproverID     int64     `json:"approverID" validate:"required"`
		InternalNotes  string    `json:"internalNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := h.lookupUserWithRole(w, r, req.DrafterID, drafterRoles, "người soạn thảo"); !ok {
		return
	}
	if _, ok := h.lookupUserWithRole(w, r, req.ApproverID, approverRoles, "người phê duyệt"); !ok {
		return
	}

	doc := &domain.OutgoingDocument{
		DocumentNumber: req.DocumentNumber,
		IssueDate:      req.IssueDate,
		DocumentTypeID: req.DocumentTypeID,
		IssuingUnitID:  req.IssuingUnitID,
		Summary:        req.Summary,
		InternalNotes:  req.InternalNotes,
		DrafterID:      req.DrafterID,
		ApproverID:     req.ApproverID,
		Status:         domain.OutgoingStatusDraft,
		CreatedByID:    myInfo.ID,
	}

	if err := h.repository.CreateOutgoingDocument(r.Context(), doc); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "outgoing_documents_document_type_id_fkey":
				h.badRequest(w, r, errors.New("loại văn bản không tồn tại"))
			case pgErr.ConstraintName == "outgoing_documents_issuing_unit_id_fkey":
				h.badRequest(w, r, errors.New("đơn vị ban hành không tồn tại"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "tạo văn bản đi thành công", doc)
}

func (h *Handler) GetAllOutgoingDocuments(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	docs, err := h.repository.GetOutgoingDocumentsForUser(r.Context(), myInfo.ID, myInfo.Role)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách văn bản đi thành công", docs)
}

func (h *Handler) GetOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(OutgoingDocumentCtx).(*domain.OutgoingDocument)
	h.successResponse(w, r, "lấy thông tin văn bản đi thành công", doc)
}

func (h *Handler) UpdateOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	doc := r.Context().Value(OutgoingDocumentCtx).(*domain.OutgoingDocument)

	// Cán bộ chỉ được sửa văn bản mình soạn thảo hoặc mình tạo.
	if myInfo.Role == domain.RoleOfficer && doc.DrafterID != myInfo.ID && doc.CreatedByID != myInfo.ID {
		h.errorResponse(w, r, "bạn không có quyền chỉnh sửa văn bản này")
		return
	}

	var req struct {
		DocumentNumber *string    `json:"documentNumber"`
		IssueDate      *time.Time `json:"issueDate"`
		DocumentTypeID *int64     `json:"documentTypeID"`
		IssuingUnitID  *int64     `json:"issuingUnitID"`
		Summary        *string    `json:"summary"`
		InternalNotes  *string    `json:"internalNotes"`
		DrafterID      *int64     `json:"drafterID"`
		ApproverID     *int64     `json:"approverID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DrafterID != nil {
		if _, ok := h.lookupUserWithRole(w, r, *req.DrafterID, drafterRoles, "người soạn thảo"); !ok {
			return
		}
		doc.DrafterID = *req.DrafterID
	}
	if req.ApproverID != nil {
		if _, ok := h.lookupUserWithRole(w, r, *req.ApproverID, approverRoles, "người phê duyệt"); !ok {
			return
		}
		doc.ApproverID = *req.ApproverID
	}
	if req.DocumentNumber != nil {
		doc.DocumentNumber = *req.DocumentNumber
	}
	if req.IssueDate != nil {
		doc.IssueDate = *req.IssueDate
	}
	if req.DocumentTypeID != nil {
		doc.DocumentTypeID = *req.DocumentTypeID
	}
	if req.IssuingUnitID != nil {
		doc.IssuingUnitID = *req.IssuingUnitID
	}
	if req.Summary != nil {
		doc.Summary = *req.Summary
	}
	if req.InternalNotes != nil {
		doc.InternalNotes = *req.InternalNotes
	}

	if err := h.repository.UpdateOutgoingDocument(r.Context(), doc); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật văn bản đi thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật văn bản đi thành công", doc)
}

// UpdateOutgoingDocumentApprovalStatus thay đổi trạng thái phê duyệt. Chỉ
// người phê duyệt của văn bản, Văn thư hoặc Quản trị viên mới được đổi.
func (h *Handler) UpdateOutgoingDocumentApprovalStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	doc := r.Context().Value(OutgoingDocumentCtx).(*domain.OutgoingDocument)

	if myInfo.Role != domain.RoleSecretary && myInfo.Role != domain.RoleAdmin && doc.ApproverID != myInfo.ID {
		h.errorResponse(w, r, "chỉ người phê duyệt mới được thay đổi trạng thái phê duyệt")
		return
	}

	var req struct {
		Status domain.OutgoingDocumentStatus `json:"status" validate:"required,oneof=draft review approved sent rejected"`
		Notes  string                        `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc.Status = req.Status
	if req.Notes != "" {
		doc.InternalNotes = req.Notes
	}

	if err := h.repository.UpdateOutgoingDocument(r.Context(), doc); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật trạng thái phê duyệt thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật trạng thái phê duyệt thành công", doc)
}

func (h *Handler) DeleteOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	doc := r.Context().Value(OutgoingDocumentCtx).(*domain.OutgoingDocument)

	if myInfo.Role == domain.RoleOfficer {
		h.errorResponse(w, r, "bạn không có quyền xóa văn bản đi")
		return
	}

	if doc.IsFinalized() {
		h.errorResponse(w, r, "không thể xóa văn bản đã được phê duyệt hoặc đã gửi")
		return
	}

	if err := h.repository.DeleteOutgoingDocument(r.Context(), doc.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "task_outgoing_documents_outgoing_document_id_fkey":
			h.errorResponse(w, r, "không thể xóa văn bản đang được liên kết với công việc")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "xóa văn bản đi thành công", nil)
}

func (h *Handler) GetEligibleDrafters(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetUsersByRoles(r.Context(), drafterRoles)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách người soạn thảo thành công", users)
}

func (h *Handler) GetEligibleApprovers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetUsersByRoles(r.Context(), approverRoles)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách người phê duyệt thành công", users)
}

func (h *Handler) LinkTaskToOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req struct {
		OutgoingDocumentID int64                   `json:"outgoingDocumentID" validate:"required"`
		RelationshipType   domain.RelationshipType `json:"relationshipType" validate:"omitempty,oneof=result reference related"`
		Notes              string                  `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.RelationshipType == "" {
		req.RelationshipType = domain.RelationshipResult
	}

	if _, err := h.repository.GetOutgoingDocumentByID(r.Context(), req.OutgoingDocumentID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "không tìm thấy văn bản đi")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if _, err := h.repository.GetTaskOutgoingDocumentLink(r.Context(), task.ID, req.OutgoingDocumentID); err == nil {
		h.errorResponse(w, r, "công việc đã được liên kết với văn bản này")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	link := &domain.TaskOutgoingDocument{
		TaskID:             task.ID,
		OutgoingDocumentID: req.OutgoingDocumentID,
		RelationshipType:   req.RelationshipType,
		Notes:              req.Notes,
		CreatedByID:        myInfo.ID,
	}

	if err := h.repository.LinkTaskToOutgoingDocument(r.Context(), link); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "liên kết văn bản đi với công việc thành công", link)
}

func (h *Handler) UnlinkTaskFromOutgoingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	task := r.Context().Value(TaskCtx).(*domain.Task)

	docIDParam := chi.URLParam(r, "documentID")
	docID, err := strconv.ParseInt(docIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID văn bản không hợp lệ")
		return
	}

	link, err := h.repository.GetTaskOutgoingDocumentLink(r.Context(), task.ID, docID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "không tìm thấy liên kết")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// Văn thư, Quản trị viên hoặc người tạo liên kết mới được gỡ.
	if myInfo.Role != domain.RoleSecretary && myInfo.Role != domain.RoleAdmin && link.CreatedByID != myInfo.ID {
		h.errorResponse(w, r, "bạn không có quyền gỡ liên kết này")
		return
	}

	if err := h.repository.UnlinkTaskFromOutgoingDocument(r.Context(), link.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "gỡ liên kết thành công", nil)
}

func (h *Handler) GetTaskOutgoingDocuments(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	links, err := h.repository.GetTaskOutgoingDocuments(r.Context(), task.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách văn bản đi liên kết thành công", links)
}
