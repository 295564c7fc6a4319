package repository

import (
	"context"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// ArticleRepository adds the article lookups used by the publish workflow
// and the editorial screens.
type ArticleRepository struct {
	*Repository[entity.Article]
}

// NewArticleRepository builds the article repository.
func NewArticleRepository(reg *Registry, st store.Store) (*ArticleRepository, error) {
	base, err := New[entity.Article](reg, st, articleType)
	if err != nil {
		return nil, err
	}
	return &ArticleRepository{Repository: base}, nil
}

// CreateDraft creates a new article in CREATED state for the given author and
// editor, optionally linked to a task.
func (r *ArticleRepository) CreateDraft(ctx context.Context, author *int64, editor int64, task *int64) (*entity.Article, error) {
	partial := store.Record{"editor": editor}
	if author != nil {
		partial["author"] = *author
	}
	if task != nil {
		partial["task"] = *task
	}
	return r.Create(ctx, partial)
}

// GetByAuthor returns the articles credited to the author, in insertion order.
func (r *ArticleRepository) GetByAuthor(ctx context.Context, author int64) ([]*entity.Article, error) {
	return r.query(ctx, func(rec store.Record) bool {
		v := rec.OptInt64("author")
		return v != nil && *v == author
	})
}

// GetByEditor returns the articles assigned to the editor.
func (r *ArticleRepository) GetByEditor(ctx context.Context, editor int64) ([]*entity.Article, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("editor") == editor
	})
}

// GetByCategory returns the articles filed under the category.
func (r *ArticleRepository) GetByCategory(ctx context.Context, category int64) ([]*entity.Article, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("category") == category
	})
}

// GetByTask returns the articles written against the task.
func (r *ArticleRepository) GetByTask(ctx context.Context, task int64) ([]*entity.Article, error) {
	return r.query(ctx, func(rec store.Record) bool {
		v := rec.OptInt64("task")
		return v != nil && *v == task
	})
}
