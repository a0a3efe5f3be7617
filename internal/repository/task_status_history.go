package repository

import (
	"context"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

func (r *Repository) AppendTaskStatusHistory(ctx context.Context, entry *domain.TaskStatusHistory) error {
	query := `
		INSERT INTO task_status_history (task_id, old_status, new_status, changed_by_id, note, assignee_changed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		entry.TaskID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedByID,
		entry.Note,
		entry.AssigneeChanged,
		entry.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return err
	}

	return nil
}

// GetTaskStatusHistory trả về sổ lịch sử của công việc theo thứ tự cũ nhất
// trước, dùng để hiển thị.
func (r *Repository) GetTaskStatusHistory(ctx context.Context, taskID int64) ([]*domain.TaskStatusHistory, error) {
	query := `
		SELECT id, task_id, old_status, new_status, changed_by_id, note, assignee_changed, created_at
		FROM task_status_history
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

	entries := make([]*domain.TaskStatusHistory, 0)
	for rows.Next() {
		entry := &domain.TaskStatusHistory{}
		dst := []any{
			&entry.ID,
			&entry.TaskID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.ChangedByID,
			&entry.Note,
			&entry.AssigneeChanged,
			&entry.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
