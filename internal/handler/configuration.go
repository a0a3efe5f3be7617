package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Các handler cho ba thực thể cấu hình (loại văn bản, đơn vị ban hành, đơn
// vị nhận) có cùng khuôn request nên dùng chung hai struct dưới đây.

type configEntityRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type configEntityUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (h *Handler) entityIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID không hợp lệ")
		return 0, false
	}
	return id, true
}

func (h *Handler) onlyActiveParam(r *http.Request) bool {
	return r.URL.Query().Get("onlyActive") == "true"
}

func (h *Handler) configEntityDeleteError(w http.ResponseWriter, r *http.Request, err error, inUseMsg string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		h.errorResponse(w, r, inUseMsg)
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) CreateDocumentType(w http.ResponseWriter, r *http.Request) {
	var req configEntityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dt := &domain.DocumentType{Name: req.Name, Description: req.Description}
	if err := h.repository.CreateDocumentType(r.Context(), dt); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tạo loại văn bản thành công", dt)
}

func (h *Handler) GetAllDocumentTypes(w http.ResponseWriter, r *http.Request) {
	entities, err := h.repository.GetAllDocumentTypes(r.Context(), h.onlyActiveParam(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách loại văn bản thành công", entities)
}

func (h *Handler) UpdateDocumentType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	var req configEntityUpdateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dt, err := h.repository.GetDocumentType(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "không tìm thấy loại văn bản")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Name != nil {
		dt.Name = *req.Name
	}
	if req.Description != nil {
		dt.Description = *req.Description
	}
	if req.IsActive != nil {
		dt.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateDocumentType(r.Context(), dt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật loại văn bản thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật loại văn bản thành công", dt)
}

func (h *Handler) DeleteDocumentType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteDocumentType(r.Context(), id); err != nil {
		h.configEntityDeleteError(w, r, err, "không thể xóa loại văn bản đang được sử dụng")
		return
	}

	h.successResponse(w, r, "xóa loại văn bản thành công", nil)
}

func (h *Handler) CreateIssuingUnit(w http.ResponseWriter, r *http.Request) {
	var req configEntityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	iu := &domain.IssuingUnit{Name: req.Name, Description: req.Description}
	if err := h.repository.CreateIssuingUnit(r.Context(), iu); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tạo đơn vị ban hành thành công", iu)
}

func (h *Handler) GetAllIssuingUnits(w http.ResponseWriter, r *http.Request) {
	entities, err := h.repository.GetAllIssuingUnits(r.Context(), h.onlyActiveParam(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách đơn vị ban hành thành công", entities)
}

func (h *Handler) UpdateIssuingUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	var req configEntityUpdateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	iu, err := h.repository.GetIssuingUnit(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "không tìm thấy đơn vị ban hành")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Name != nil {
		iu.Name = *req.Name
	}
	if req.Description != nil {
		iu.Description = *req.Description
	}
	if req.IsActive != nil {
		iu.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateIssuingUnit(r.Context(), iu); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật đơn vị ban hành thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật đơn vị ban hành thành công", iu)
}

func (h *Handler) DeleteIssuingUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteIssuingUnit(r.Context(), id); err != nil {
		h.configEntityDeleteError(w, r, err, "không thể xóa đơn vị ban hành đang được sử dụng")
		return
	}

	h.successResponse(w, r, "xóa đơn vị ban hành thành công", nil)
}

func (h *Handler) CreateReceivingUnit(w http.ResponseWriter, r *http.Request) {
	var req configEntityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ru := &domain.ReceivingUnit{Name: req.Name, Description: req.Description}
	if err := h.repository.CreateReceivingUnit(r.Context(), ru); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tạo đơn vị nhận thành công", ru)
}

func (h *Handler) GetAllReceivingUnits(w http.ResponseWriter, r *http.Request) {
	entities, err := h.repository.GetAllReceivingUnits(r.Context(), h.onlyActiveParam(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách đơn vị nhận thành công", entities)
}

func (h *Handler) UpdateReceivingUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	var req configEntityUpdateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ru, err := h.repository.GetReceivingUnit(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "không tìm thấy đơn vị nhận")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Name != nil {
		ru.Name = *req.Name
	}
	if req.Description != nil {
		ru.Description = *req.Description
	}
	if req.IsActive != nil {
		ru.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateReceivingUnit(r.Context(), ru); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cập nhật đơn vị nhận thất bại, vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật đơn vị nhận thành công", ru)
}

func (h *Handler) DeleteReceivingUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entityIDParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteReceivingUnit(r.Context(), id); err != nil {
		h.configEntityDeleteError(w, r, err, "không thể xóa đơn vị nhận đang được sử dụng")
		return
	}

	h.successResponse(w, r, "xóa đơn vị nhận thành công", nil)
}
