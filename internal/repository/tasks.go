package repository

import (
	"context"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

func (r *Repository) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT description, status, assigned_to_id, created_by_id, incoming_document_id,
			deadline, processing_content, processing_notes, completion_date,
			created_at, updated_at, version
		FROM tasks WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	task := &domain.Task{
		ID: id,
	}

	dst := []any{
		&task.Description,
		&task.Status,
		&task.AssignedToID,
		&task.CreatedByID,
		&task.IncomingDocumentID,
		&task.Deadline,
		&task.ProcessingContent,
		&task.ProcessingNotes,
		&task.CompletionDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return task, nil
}

// CreateTask tạo công việc cùng với bản ghi lịch sử đầu tiên trong một
// transaction.
func (r *Repository) CreateTask(ctx context.Context, task *domain.Task, note string) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertTask := `
		INSERT INTO tasks (description, status, assigned_to_id, created_by_id, incoming_document_id,
			deadline, processing_content, processing_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at, version
	`

	args := []any{
		task.Description,
		task.Status,
		task.AssignedToID,
		task.CreatedByID,
		task.IncomingDocumentID,
		task.Deadline,
		task.ProcessingContent,
		task.ProcessingNotes,
	}
	if err := tx.QueryRowContext(ctx, insertTask, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt, &task.Version); err != nil {
		return err
	}

	insertHistory := `
		INSERT INTO task_status_history (task_id, old_status, new_status, changed_by_id, note, assignee_changed)
		VALUES ($1, NULL, $2, $3, $4, false)
	`
	if _, err := tx.ExecContext(ctx, insertHistory, task.ID, task.Status, task.CreatedByID, note); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) UpdateTask(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET
			description = $1,
			status = $2,
			assigned_to_id = $3,
			incoming_document_id = $4,
			deadline = $5,
			processing_content = $6,
			processing_notes = $7,
			completion_date = $8,
			updated_at = now(),
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		task.Description,
		task.Status,
		task.AssignedToID,
		task.IncomingDocumentID,
		task.Deadline,
		task.ProcessingContent,
		task.ProcessingNotes,
		task.CompletionDate,
		task.ID,
		task.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&task.UpdatedAt, &task.Version); err != nil {
		return err
	}

	return nil
}

// UpdateTaskWithHistory cập nhật công việc và ghi bản ghi lịch sử kèm theo
// trong một transaction: nếu một trong hai thất bại thì cả hai được hoàn tác.
func (r *Repository) UpdateTaskWithHistory(ctx context.Context, task *domain.Task, entry *domain.TaskStatusHistory) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateTask := `
		UPDATE tasks
		SET
			description = $1,
			status = $2,
			assigned_to_id = $3,
			incoming_document_id = $4,
			deadline = $5,
			processing_content = $6,
			processing_notes = $7,
			completion_date = $8,
			updated_at = now(),
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING updated_at, version
	`

	args := []any{
		task.Description,
		task.Status,
		task.AssignedToID,
		task.IncomingDocumentID,
		task.Deadline,
		task.ProcessingContent,
		task.ProcessingNotes,
		task.CompletionDate,
		task.ID,
		task.Version,
	}
	if err := tx.QueryRowContext(ctx, updateTask, args...).Scan(&task.UpdatedAt, &task.Version); err != nil {
		return err
	}

	insertHistory := `
		INSERT INTO task_status_history (task_id, old_status, new_status, changed_by_id, note, assignee_changed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	historyArgs := []any{
		entry.TaskID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedByID,
		entry.Note,
		entry.AssigneeChanged,
		entry.CreatedAt,
	}
	if err := tx.QueryRowContext(ctx, insertHistory, historyArgs...).Scan(&entry.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTaskWithHistory ghi bản ghi lịch sử cuối cùng rồi xóa công việc trong
// một transaction. Dòng lịch sử phải được ghi trước khi xóa để khóa ngoại
// task_id còn trỏ đến công việc tại thời điểm insert.
func (r *Repository) DeleteTaskWithHistory(ctx context.Context, id int64, entry *domain.TaskStatusHistory) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertHistory := `
		INSERT INTO task_status_history (task_id, old_status, new_status, changed_by_id, note, assignee_changed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	historyArgs := []any{
		entry.TaskID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedByID,
		entry.Note,
		entry.AssigneeChanged,
		entry.CreatedAt,
	}
	if err := tx.QueryRowContext(ctx, insertHistory, historyArgs...).Scan(&entry.ID); err != nil {
		return err
	}

	deleteTask := `
		DELETE FROM tasks WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, deleteTask, id); err != nil {
		return err
	}

	return tx.Commit()
}

// GetTasksForUser trả về danh sách công việc theo phạm vi nhìn thấy của từng
// vai trò: Văn thư và Quản trị viên thấy tất cả; Trưởng và Phó thấy công việc
// do mình tạo hoặc được gán cho mình; Cán bộ chỉ thấy công việc được gán cho
// mình.
func (r *Repository) GetTasksForUser(ctx context.Context, userID int64, role domain.Role) ([]*domain.Task, error) {
	query := `
		SELECT id, description, status, assigned_to_id, created_by_id, incoming_document_id,
			deadline, processing_content, processing_notes, completion_date,
			created_at, updated_at, version
		FROM tasks
	`

	var args []any
	switch role {
	case domain.RoleSecretary, domain.RoleAdmin:
	case domain.RoleTeamLeader, domain.RoleDeputy:
		query += ` WHERE assigned_to_id = $1 OR created_by_id = $1`
		args = append(args, userID)
	default:
		query += ` WHERE assigned_to_id = $1`
		args = append(args, userID)
	}

	query += ` ORDER BY created_at DESC`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task := &domain.Task{}
		dst := []any{
			&task.ID,
			&task.Description,
			&task.Status,
			&task.AssignedToID,
			&task.CreatedByID,
			&task.IncomingDocumentID,
			&task.Deadline,
			&task.ProcessingContent,
			&task.ProcessingNotes,
			&task.CompletionDate,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
