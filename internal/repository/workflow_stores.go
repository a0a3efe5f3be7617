package repository

import (
	"context"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

// Các adapter dưới đây cho Repository thỏa mãn các interface mà workflow
// engine cần (TaskStore, HistoryStore, UserDirectory) mà không phải đổi tên
// các phương thức theo từng thực thể.

type taskStore struct {
	r *Repository
}

func (s taskStore) Load(ctx context.Context, id int64) (*domain.Task, error) {
	return s.r.GetTaskByID(ctx, id)
}

func (s taskStore) SaveWithHistory(ctx context.Context, task *domain.Task, entry *domain.TaskStatusHistory) error {
	return s.r.UpdateTaskWithHistory(ctx, task, entry)
}

func (s taskStore) DeleteWithHistory(ctx context.Context, id int64, entry *domain.TaskStatusHistory) error {
	return s.r.DeleteTaskWithHistory(ctx, id, entry)
}

func (r *Repository) TaskStore() taskStore {
	return taskStore{r: r}
}

type historyStore struct {
	r *Repository
}

func (s historyStore) Append(ctx context.Context, entry *domain.TaskStatusHistory) error {
	return s.r.AppendTaskStatusHistory(ctx, entry)
}

func (s historyStore) ListByTask(ctx context.Context, taskID int64) ([]*domain.TaskStatusHistory, error) {
	return s.r.GetTaskStatusHistory(ctx, taskID)
}

func (r *Repository) HistoryStore() historyStore {
	return historyStore{r: r}
}

type userDirectory struct {
	r *Repository
}

func (d userDirectory) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return d.r.GetUserByID(ctx, id)
}

func (r *Repository) UserDirectory() userDirectory {
	return userDirectory{r: r}
}
