package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

// Ba thực thể cấu hình (loại văn bản, đơn vị ban hành, đơn vị nhận) có cùng
// cấu trúc nên dùng chung một bộ truy vấn theo tên bảng. Tên bảng là hằng số
// trong package, không bao giờ đến từ đầu vào của người dùng.

const (
	tableDocumentTypes  = "document_types"
	tableIssuingUnits   = "issuing_units"
	tableReceivingUnits = "receiving_units"
)

type configEntity struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	Version     int32
}

func (r *Repository) getConfigEntity(ctx context.Context, table string, id int64) (*configEntity, error) {
	query := fmt.Sprintf(`
		SELECT name, description, is_active, created_at, version
		FROM %s WHERE id = $1
	`, table)

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	entity := &configEntity{ID: id}
	dst := []any{&entity.Name, &entity.Description, &entity.IsActive, &entity.CreatedAt, &entity.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return entity, nil
}

func (r *Repository) getAllConfigEntities(ctx context.Context, table string, onlyActive bool) ([]*configEntity, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, is_active, created_at, version
		FROM %s
	`, table)
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := make([]*configEntity, 0)
	for rows.Next() {
		entity := &configEntity{}
		dst := []any{&entity.ID, &entity.Name, &entity.Description, &entity.IsActive, &entity.CreatedAt, &entity.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entities, nil
}

func (r *Repository) createConfigEntity(ctx context.Context, table string, entity *configEntity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at, version
	`, table)

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, entity.Name, entity.Description).Scan(&entity.ID, &entity.IsActive, &entity.CreatedAt, &entity.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) updateConfigEntity(ctx context.Context, table string, entity *configEntity) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET
			name = $1,
			description = $2,
			is_active = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`, table)

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{entity.Name, entity.Description, entity.IsActive, entity.ID, entity.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entity.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) deleteConfigEntity(ctx context.Context, table string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func documentTypeFromEntity(e *configEntity) *domain.DocumentType {
	return &domain.DocumentType{ID: e.ID, Name: e.Name, Description: e.Description, IsActive: e.IsActive, CreatedAt: e.CreatedAt, Version: e.Version}
}

func issuingUnitFromEntity(e *configEntity) *domain.IssuingUnit {
	return &domain.IssuingUnit{ID: e.ID, Name: e.Name, Description: e.Description, IsActive: e.IsActive, CreatedAt: e.CreatedAt, Version: e.Version}
}

func receivingUnitFromEntity(e *configEntity) *domain.ReceivingUnit {
	return &domain.ReceivingUnit{ID: e.ID, Name: e.Name, Description: e.Description, IsActive: e.IsActive, CreatedAt: e.CreatedAt, Version: e.Version}
}

func (r *Repository) GetDocumentType(ctx context.Context, id int64) (*domain.DocumentType, error) {
	entity, err := r.getConfigEntity(ctx, tableDocumentTypes, id)
	if err != nil {
		return nil, err
	}
	return documentTypeFromEntity(entity), nil
}

func (r *Repository) GetAllDocumentTypes(ctx context.Context, onlyActive bool) ([]*domain.DocumentType, error) {
	entities, err := r.getAllConfigEntities(ctx, tableDocumentTypes, onlyActive)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.DocumentType, 0, len(entities))
	for _, e := range entities {
		result = append(result, documentTypeFromEntity(e))
	}
	return result, nil
}

func (r *Repository) CreateDocumentType(ctx context.Context, dt *domain.DocumentType) error {
	entity := &configEntity{Name: dt.Name, Description: dt.Description}
	if err := r.createConfigEntity(ctx, tableDocumentTypes, entity); err != nil {
		return err
	}
	*dt = *documentTypeFromEntity(entity)
	return nil
}

func (r *Repository) UpdateDocumentType(ctx context.Context, dt *domain.DocumentType) error {
	entity := &configEntity{ID: dt.ID, Name: dt.Name, Description: dt.Description, IsActive: dt.IsActive, Version: dt.Version}
	if err := r.updateConfigEntity(ctx, tableDocumentTypes, entity); err != nil {
		return err
	}
	dt.Version = entity.Version
	return nil
}

func (r *Repository) DeleteDocumentType(ctx context.Context, id int64) error {
	return r.deleteConfigEntity(ctx, tableDocumentTypes, id)
}

func (r *Repository) GetIssuingUnit(ctx context.Context, id int64) (*domain.IssuingUnit, error) {
	entity, err := r.getConfigEntity(ctx, tableIssuingUnits, id)
	if err != nil {
		return nil, err
	}
	return issuingUnitFromEntity(entity), nil
}

func (r *Repository) GetAllIssuingUnits(ctx context.Context, onlyActive bool) ([]*domain.IssuingUnit, error) {
	entities, err := r.getAllConfigEntities(ctx, tableIssuingUnits, onlyActive)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.IssuingUnit, 0, len(entities))
	for _, e := range entities {
		result = append(result, issuingUnitFromEntity(e))
	}
	return result, nil
}

func (r *Repository) CreateIssuingUnit(ctx context.Context, iu *domain.IssuingUnit) error {
	entity := &configEntity{Name: iu.Name, Description: iu.Description}
	if err := r.createConfigEntity(ctx, tableIssuingUnits, entity); err != nil {
		return err
	}
	*iu = *issuingUnitFromEntity(entity)
	return nil
}

func (r *Repository) UpdateIssuingUnit(ctx context.Context, iu *domain.IssuingUnit) error {
	entity := &configEntity{ID: iu.ID, Name: iu.Name, Description: iu.Description, IsActive: iu.IsActive, Version: iu.Version}
	if err := r.updateConfigEntity(ctx, tableIssuingUnits, entity); err != nil {
		return err
	}
	iu.Version = entity.Version
	return nil
}

func (r *Repository) DeleteIssuingUnit(ctx context.Context, id int64) error {
	return r.deleteConfigEntity(ctx, tableIssuingUnits, id)
}

func (r *Repository) GetReceivingUnit(ctx context.Context, id int64) (*domain.ReceivingUnit, error) {
	entity, err := r.getConfigEntity(ctx, tableReceivingUnits, id)
	if err != nil {
		return nil, err
	}
	return receivingUnitFromEntity(entity), nil
}

func (r *Repository) GetAllReceivingUnits(ctx context.Context, onlyActive bool) ([]*domain.ReceivingUnit, error) {
	entities, err := r.getAllConfigEntities(ctx, tableReceivingUnits, onlyActive)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.ReceivingUnit, 0, len(entities))
	for _, e := range entities {
		result = append(result, receivingUnitFromEntity(e))
	}
	return result, nil
}

func (r *Repository) CreateReceivingUnit(ctx context.Context, ru *domain.ReceivingUnit) error {
	entity := &configEntity{Name: ru.Name, Description: ru.Description}
	if err := r.createConfigEntity(ctx, tableReceivingUnits, entity); err != nil {
		return err
	}
	*ru = *receivingUnitFromEntity(entity)
	return nil
}

func (r *Repository) UpdateReceivingUnit(ctx context.Context, ru *domain.ReceivingUnit) error {
	entity := &configEntity{ID: ru.ID, Name: ru.Name, Description: ru.Description, IsActive: ru.IsActive, Version: ru.Version}
	if err := r.updateConfigEntity(ctx, tableReceivingUnits, entity); err != nil {
		return err
	}
	ru.Version = entity.Version
	return nil
}

func (r *Repository) DeleteReceivingUnit(ctx context.Context, id int64) error {
	return r.deleteConfigEntity(ctx, tableReceivingUnits, id)
}
