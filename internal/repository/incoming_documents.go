package repository

import (
	"context"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

func (r *Repository) GetIncomingDocumentByID(ctx context.Context, id int64) (*domain.IncomingDocument, error) {
	query := `
		SELECT arrival_number, arrival_date, original_number, document_date,
			document_type_id, issuing_unit_id, summary, internal_notes,
			created_by_id, created_at, version
		FROM incoming_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	doc := &domain.IncomingDocument{
		ID: id,
	}

	dst := []any{
		&doc.ArrivalNumber,
		&doc.ArrivalDate,
		&doc.OriginalNumber,
		&doc.DocumentDate,
		&doc.DocumentTypeID,
		&doc.IssuingUnitID,
		&doc.Summary,
		&doc.InternalNotes,
		&doc.CreatedByID,
		&doc.CreatedAt,
		&doc.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *Repository) CreateIncomingDocument(ctx context.Context, doc *domain.IncomingDocument) error {
	// Số đến là số thứ tự trong sổ công văn, cấp tuần tự ngay trong câu
	// INSERT để không phải khóa bảng ở tầng ứng dụng.
	query := `
		INSERT INTO incoming_documents (arrival_number, arrival_date, original_number, document_date,
			document_type_id, issuing_unit_id, summary, internal_notes, created_by_id)
		VALUES ((SELECT COALESCE(MAX(arrival_number), 0) + 1 FROM incoming_documents), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, arrival_number, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		doc.ArrivalDate,
		doc.OriginalNumber,
		doc.DocumentDate,
		doc.DocumentTypeID,
		doc.IssuingUnitID,
		doc.Summary,
		doc.InternalNotes,
		doc.CreatedByID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.ArrivalNumber, &doc.CreatedAt, &doc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateIncomingDocument(ctx context.Context, doc *domain.IncomingDocument) error {
	query := `
		UPDATE incoming_documents
		SET
			arrival_number = $1,
			arrival_date = $2,
			original_number = $3,
			document_date = $4,
			document_type_id = $5,
			issuing_unit_id = $6,
			summary = $7,
			internal_notes = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		doc.ArrivalNumber,
		doc.ArrivalDate,
		doc.OriginalNumber,
		doc.DocumentDate,
		doc.DocumentTypeID,
		doc.IssuingUnitID,
		doc.Summary,
		doc.InternalNotes,
		doc.ID,
		doc.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllIncomingDocuments(ctx context.Context) ([]*domain.IncomingDocument, error) {
	query := `
		SELECT id, arrival_number, arrival_date, original_number, document_date,
			document_type_id, issuing_unit_id, summary, internal_notes,
			created_by_id, created_at, version
		FROM incoming_documents
		ORDER BY arrival_number DESC
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*domain.IncomingDocument, 0)
	for rows.Next() {
		doc := &domain.IncomingDocument{}
		dst := []any{
			&doc.ID,
			&doc.ArrivalNumber,
			&doc.ArrivalDate,
			&doc.OriginalNumber,
			&doc.DocumentDate,
			&doc.DocumentTypeID,
			&doc.IssuingUnitID,
			&doc.Summary,
			&doc.InternalNotes,
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

func (r *Repository) DeleteIncomingDocument(ctx context.Context, id int64) error {
	query := `
		DELETE FROM incoming_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
