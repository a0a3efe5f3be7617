package repository

import (
	"context"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

func (r *Repository) GetOutgoingDocumentByID(ctx context.Context, id int64) (*domain.OutgoingDocument, error) {
	query := `
		SELECT document_number, issue_date, document_type_id, issuing_unit_id,
			summary, internal_notes, drafter_id, approver_id, status,
			created_by_id, created_at, version
		FROM outgoing_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	doc := &domain.OutgoingDocument{
		ID: id,
	}

	dst := []any{
		&doc.DocumentNumber,
		&doc.IssueDate,
		&doc.DocumentTypeID,
		&doc.IssuingUnitID,
		&doc.Summary,
		&doc.InternalNotes,
		&doc.DrafterID,
		&doc.ApproverID,
		&doc.Status,
		&doc.CreatedByID,
		&doc.CreatedAt,
		&doc.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *Repository) CreateOutgoingDocument(ctx context.Context, doc *domain.OutgoingDocument) error {
	query := `
		INSERT INTO outgoing_documents (document_number, issue_date, document_type_id, issuing_unit_id,
			summary, internal_notes, drafter_id, approver_id, status, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		doc.DocumentNumber,
		doc.IssueDate,
		doc.DocumentTypeID,
		doc.IssuingUnitID,
		doc.Summary,
		doc.InternalNotes,
		doc.DrafterID,
		doc.ApproverID,
		doc.Status,
		doc.CreatedByID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.CreatedAt, &doc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateOutgoingDocument(ctx context.Context, doc *domain.OutgoingDocument) error {
	query := `
		UPDATE outgoing_documents
		SET
			document_number = $1,
			issue_date = $2,
			document_type_id = $3,
			issuing_unit_id = $4,
			summary = $5,
			internal_notes = $6,
			drafter_id = $7,
			approver_id = $8,
			status = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		doc.DocumentNumber,
		doc.IssueDate,
		doc.DocumentTypeID,
		doc.IssuingUnitID,
		doc.Summary,
		doc.InternalNotes,
		doc.DrafterID,
		doc.ApproverID,
		doc.Status,
		doc.ID,
		doc.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doc.Version); err != nil {
		return err
	}

	return nil
}

// GetOutgoingDocumentsForUser trả về danh sách văn bản đi theo phạm vi nhìn
// thấy của từng vai trò: Cán bộ chỉ thấy văn bản mình soạn thảo hoặc mình
// tạo, các vai trò còn lại thấy tất cả.
func (r *Repository) GetOutgoingDocumentsForUser(ctx context.Context, userID int64, role domain.Role) ([]*domain.OutgoingDocument, error) {
	query := `
		SELECT id, document_number, issue_date, document_type_id, issuing_unit_id,
			summary, internal_notes, drafter_id, approver_id, status,
			created_by_id, created_at, version
		FROM outgoing_documents
	`

	var args []any
	if role == domain.RoleOfficer {
		query += ` WHERE drafter_id = $1 OR created_by_id = $1`
		args = append(args, userID)
	}

	query += ` ORDER BY issue_date DESC, id DESC`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*domain.OutgoingDocument, 0)
	for rows.Next() {
		doc := &domain.OutgoingDocument{}
		dst := []any{
			&doc.ID,
			&doc.DocumentNumber,
			&doc.IssueDate,
			&doc.DocumentTypeID,
			&doc.IssuingUnitID,
			&doc.Summary,
			&doc.InternalNotes,
			&doc.DrafterID,
			&doc.ApproverID,
			&doc.Status,
			&doc.CreatedByID,
			&doc.CreatedAt,
			&doc.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *Repository) DeleteOutgoingDocument(ctx context.Context, id int64) error {
	query := `
		DELETE FROM outgoing_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) LinkTaskToOutgoingDocument(ctx context.Context, link *domain.TaskOutgoingDocument) error {
	query := `
		INSERT INTO task_outgoing_documents (task_id, outgoing_document_id, relationship_type, notes, created_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		link.TaskID,
		link.OutgoingDocumentID,
		link.RelationshipType,
		link.Notes,
		link.CreatedByID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&link.ID, &link.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetTaskOutgoingDocumentLink nạp liên kết giữa một công việc và một văn bản
// đi, dùng để kiểm tra quyền trước khi gỡ liên kết.
func (r *Repository) GetTaskOutgoingDocumentLink(ctx context.Context, taskID, outgoingDocumentID int64) (*domain.TaskOutgoingDocument, error) {
	query := `
		SELECT id, relationship_type, notes, created_by_id, created_at
		FROM task_outgoing_documents
		WHERE task_id = $1 AND outgoing_document_id = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	link := &domain.TaskOutgoingDocument{
		TaskID:             taskID,
		OutgoingDocumentID: outgoingDocumentID,
	}

	dst := []any{
		&link.ID,
		&link.RelationshipType,
		&link.Notes,
		&link.CreatedByID,
		&link.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, taskID, outgoingDocumentID).Scan(dst...); err != nil {
		return nil, err
	}

	return link, nil
}

func (r *Repository) UnlinkTaskFromOutgoingDocument(ctx context.Context, id int64) error {
	query := `
		DELETE FROM task_outgoing_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTaskOutgoingDocuments(ctx context.Context, taskID int64) ([]*domain.TaskOutgoingDocument, error) {
	query := `
		SELECT id, task_id, outgoing_document_id, relationship_type, notes, created_by_id, created_at
		FROM task_outgoing_documents
		WHERE task_id = $1
		ORDER BY created_at ASC, id ASC
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*domain.TaskOutgoingDocument, 0)
	for rows.Next() {
		link := &domain.TaskOutgoingDocument{}
		dst := []any{
			&link.ID,
			&link.TaskID,
			&link.OutgoingDocumentID,
			&link.RelationshipType,
			&link.Notes,
			&link.CreatedByID,
			&link.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}
