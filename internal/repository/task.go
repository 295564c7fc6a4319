package repository

import (
	"context"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// TaskRepository adds the per-author and per-editor task lookups.
type TaskRepository struct {
	*Repository[entity.Task]
}

// NewTaskRepository builds the task repository.
func NewTaskRepository(reg *Registry, st store.Store) (*TaskRepository, error) {
	base, err := New[entity.Task](reg, st, taskType)
	if err != nil {
		return nil, err
	}
	return &TaskRepository{Repository: base}, nil
}

// CreateOpen creates an open task.
func (r *TaskRepository) CreateOpen(ctx context.Context, title string, author, editor, fee int64) (*entity.Task, error) {
	return r.Create(ctx, store.Record{
		"title":  title,
		"author": author,
		"editor": editor,
		"fee":    fee,
	})
}

// GetByAuthor returns the tasks assigned to the author.
func (r *TaskRepository) GetByAuthor(ctx context.Context, author int64) ([]*entity.Task, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("author") == author
	})
}

// GetByEditor returns the tasks owned by the editor.
func (r *TaskRepository) GetByEditor(ctx context.Context, editor int64) ([]*entity.Task, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("editor") == editor
	})
}
