package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateIncomingDocument(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		ArrivalDate    time.Time `json:"arrivalDate" validate:"required"`
		OriginalNumber string    `json:"originalNumber" validate:"required"`
		DocumentDate   time.Time `json:"documentDate" validate:"required"`
		DocumentTypeID int64     `json:"documentTypeID" validate:"required"`
		IssuingUnitID  int64     `json:"issuingUnitID" validate:"required"`
		Summary        string    `json:"summary" validate:"required"`
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

	doc := &domain.IncomingDocument{
		ArrivalDate:    req.ArrivalDate,
		OriginalNumber: req.OriginalNumber,
		DocumentDate:   req.DocumentDate,
		DocumentTypeID: req.DocumentTypeID,
		IssuingUnitID:  req.IssuingUnitID,
		Summary:        req.Summary,
		InternalNotes:  req.InternalNotes,
		CreatedByID:    myInfo.ID,
	}

	if err := h.repository.CreateIncomingDocument(r.Context(), doc); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "incoming_documents_document_type_id_fkey":
				h.badRequest(w, r, errors.New("loại văn bản không tồn tại"))
			case pgErr.ConstraintName == "incoming_documents_issuing_unit_id_fkey":
				h.badRequest(w, r, errors.New("đơn vị ban hành không tồn tại"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "tạo văn bản đến thành công", doc)
}

func (h *Handler) GetAllIncomingDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.repository.GetAllIncomingDocuments(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách văn bản đến thành công", docs)
}

func (h *Handler) GetIncomingDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(IncomingDocumentCtx).(*domain.IncomingDocument)
	h.successResponse(w, r, "lấy thông tin văn bản đến thành công", doc)
}

func (h *Handler) UpdateIncomingDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArrivalDate    *time.Time `json:"arrivalDate"`
		OriginalNumber *string    `json:"originalNumber"`
		DocumentDate   *time.Time `json:"documentDate"`
		DocumentTypeID *int64     `json:"documentTypeID"`
		IssuingUnitID  *int64     `json:"issuingUnitID"`
		Summary        *string    `json:"summary"`
		InternalNotes  *string    `json:"internalNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc := r.Context().Value(IncomingDocumentCtx).(*domain.IncomingDocument)

	if req.ArrivalDate != nil {
		doc.ArrivalDate = *req.ArrivalDate
	}
	if req.OriginalNumber != nil {
		doc.OriginalNumber = *req.OriginalNumber
	}
	if req.DocumentDate != nil {
		doc.DocumentDate = *req.DocumentDate
	}
	if req.DocumentTypeID != nil {
		doc.DocumentTypeID = *req.DocumentTypeID
	}
	if req.IssuingUnitID != nil {
		doc.IssuingUnitID = *req.IssuingUnitID
	}
	if req.InternalNotes != nil {
		doc.InternalNotes = *req.InternalNotes
	}
	if req.Summary != nil {
		doc.Summary = *req.Summary
	}

	if err := h.repository.UpdateIncomingDocument(r.Context(), doc); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật văn bản đến thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật văn bản đến thành công", doc)
}

func (h *Handler) DeleteIncomingDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(IncomingDocumentCtx).(*domain.IncomingDocument)

	if err := h.repository.DeleteIncomingDocument(r.Context(), doc.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "tasks_incoming_document_id_fkey":
			h.errorResponse(w, r, "không thể xóa văn bản đang có công việc liên kết")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "xóa văn bản đến thành công", nil)
}
