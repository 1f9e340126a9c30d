package service

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// CommentService handles comments on tasks. A comment is owned by its
// task's team; the team is resolved via the task and passed to the
// evaluator explicitly.
type CommentService interface {
	CreateComment(ctx context.Context, actor *model.User, taskID uuid.UUID, content string) (*model.Comment, error)
	ListTaskComments(ctx context.Context, actor *model.User, taskID uuid.UUID) ([]model.Comment, error)
	UpdateComment(ctx context.Context, actor *model.User, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor *model.User, commentID uuid.UUID) error
}

type commentService struct {
	comments  repository.CommentRepository
	tasks     repository.TaskRepository
	evaluator *access.Evaluator
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, tasks repository.TaskRepository, evaluator *access.Evaluator) CommentService {
	return &commentService{
		comments:  comments,
		tasks:     tasks,
		evaluator: evaluator,
	}
}

func (s *commentService) taskTeam(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, errors.ErrTaskNotFound
		}
		return uuid.Nil, err
	}
	return task.TeamID, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor *model.User, taskID uuid.UUID, content string) (*model.Comment, error) {
	teamID, err := s.taskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.NewCommentResource(teamID), access.ActionCreate); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.ErrInvalidOperation
	}

	comment := &model.Comment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListTaskComments(ctx context.Context, actor *model.User, taskID uuid.UUID) ([]model.Comment, error) {
	teamID, err := s.taskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.NewCommentResource(teamID), access.ActionRead); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

func (s *commentService) UpdateComment(ctx context.Context, actor *model.User, commentID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCommentNotFound
		}
		return nil, err
	}
	teamID, err := s.taskTeam(ctx, comment.TaskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.CommentResource(comment, teamID), access.ActionUpdate); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.ErrInvalidOperation
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *model.User, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCommentNotFound
		}
		return err
	}
	teamID, err := s.taskTeam(ctx, comment.TaskID)
	if err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.CommentResource(comment, teamID), access.ActionDelete); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}
