// Package publish orchestrates the article publication workflow: the status
// transition itself lives on the entity, the service adds the capability
// check, task settlement and persistence around it.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/observability/metrics"
	"magazine-backoffice/internal/pkg/keymutex"
	"magazine-backoffice/internal/repository"
	"magazine-backoffice/internal/roles"
)

// AccessChecker answers whether a user may perform an access-controlled
// action.
type AccessChecker interface {
	Check(ctx context.Context, userID int64, item roles.AccessItem) error
}

// Service runs the publication transitions. Each article's read-modify-save
// sequence is serialized through the key mutex.
type Service struct {
	Articles *repository.ArticleRepository
	Tasks    *repository.TaskRepository
	Access   AccessChecker
	Logger   *slog.Logger

	locks *keymutex.KeyMutex
}

// NewService wires the publication service.
func NewService(articles *repository.ArticleRepository, tasks *repository.TaskRepository, access AccessChecker, logger *slog.Logger) *Service {
	return &Service{
		Articles: articles,
		Tasks:    tasks,
		Access:   access,
		Logger:   logger,
		locks:    keymutex.New(),
	}
}

func articleKey(id int64) string { return "article:" + strconv.FormatInt(id, 10) }

// transition loads the article, applies apply and saves. Entity errors pass
// through unchanged.
func (s *Service) transition(ctx context.Context, articleID int64, apply func(*entity.Article) error) (*entity.Article, error) {
	unlock := s.locks.Lock(articleKey(articleID))
	defer unlock()

	article, err := s.Articles.GetOne(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := apply(article); err != nil {
		return nil, err
	}
	if err := s.Articles.Save(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Publish moves the article to PUBLISHED and closes its linked task if one is
// still open. The initiator must hold the publish capability. A task that was
// deleted in the meantime is tolerated.
func (s *Service) Publish(ctx context.Context, articleID, initiator int64) (*entity.Article, error) {
	if err := s.Access.Check(ctx, initiator, roles.PublishArticle); err != nil {
		return nil, err
	}
	article, err := s.transition(ctx, articleID, (*entity.Article).Publish)
	if err != nil {
		return nil, err
	}
	if taskID := article.Task(); taskID != nil {
		if err := s.closeTask(ctx, *taskID); err != nil {
			return nil, err
		}
	}
	metrics.RecordArticleTransition("publish")
	s.Logger.InfoContext(ctx, "article published",
		slog.Int64("article_id", articleID),
		slog.Int64("initiator", initiator),
	)
	return article, nil
}

// closeTask closes the task when it is still open. A missing task is not an
// error: publication already happened and the task reference may be stale.
func (s *Service) closeTask(ctx context.Context, taskID int64) error {
	task, err := s.Tasks.GetOne(ctx, taskID)
	if err != nil {
		if entity.KindOf(err) == entity.KindNotFound {
			return nil
		}
		return fmt.Errorf("load task %d: %w", taskID, err)
	}
	if !task.IsOpen() {
		return nil
	}
	if err := task.Close(); err != nil {
		return err
	}
	return s.Tasks.Save(ctx, task)
}

// Unpublish returns a published article to CREATED. The initiator must hold
// the publish capability.
func (s *Service) Unpublish(ctx context.Context, articleID, initiator int64) (*entity.Article, error) {
	if err := s.Access.Check(ctx, initiator, roles.PublishArticle); err != nil {
		return nil, err
	}
	article, err := s.transition(ctx, articleID, (*entity.Article).Unpublish)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticleTransition("unpublish")
	return article, nil
}

// Archive moves the article to ARCHIVED. The initiator must hold the publish
// capability.
func (s *Service) Archive(ctx context.Context, articleID, initiator int64) (*entity.Article, error) {
	if err := s.Access.Check(ctx, initiator, roles.PublishArticle); err != nil {
		return nil, err
	}
	article, err := s.transition(ctx, articleID, (*entity.Article).Archive)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticleTransition("archive")
	return article, nil
}

// Unarchive returns an archived article to CREATED. The initiator must hold
// the publish capability.
func (s *Service) Unarchive(ctx context.Context, articleID, initiator int64) (*entity.Article, error) {
	if err := s.Access.Check(ctx, initiator, roles.PublishArticle); err != nil {
		return nil, err
	}
	article, err := s.transition(ctx, articleID, (*entity.Article).Unarchive)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticleTransition("unarchive")
	return article, nil
}
