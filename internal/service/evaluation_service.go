package service

import (
	"context"
	goerrors "errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// EvaluationInput carries the fields for creating an evaluation.
type EvaluationInput struct {
	TeamID    uuid.UUID
	SubjectID uuid.UUID
	TaskID    *uuid.UUID
	Score     int
	Notes     string
}

// EvaluationStats aggregates a user's received evaluations.
type EvaluationStats struct {
	Count        int         `json:"count"`
	AverageScore string      `json:"average_score"`
	Distribution map[int]int `json:"distribution"`
}

// EvaluationService handles performance evaluations between teammates.
type EvaluationService interface {
	CreateEvaluation(ctx context.Context, actor *model.User, input EvaluationInput) (*model.Evaluation, error)
	DeleteEvaluation(ctx context.Context, actor *model.User, evaluationID uuid.UUID) error
	ListForSubject(ctx context.Context, actor *model.User, subjectID uuid.UUID) ([]model.Evaluation, error)
	ListByEvaluator(ctx context.Context, actor *model.User) ([]model.Evaluation, error)
	ListForTask(ctx context.Context, actor *model.User, taskID uuid.UUID) ([]model.Evaluation, error)
	SubjectStats(ctx context.Context, actor *model.User, subjectID uuid.UUID) (*EvaluationStats, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	tasks       repository.TaskRepository
	memberships MembershipService
	evaluator   *access.Evaluator
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(
	evaluations repository.EvaluationRepository,
	tasks repository.TaskRepository,
	memberships MembershipService,
	evaluator *access.Evaluator,
) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		tasks:       tasks,
		memberships: memberships,
		evaluator:   evaluator,
	}
}

// CreateEvaluation persists an evaluation. Self-evaluation and evaluating a
// non-teammate are rejected by the access evaluator; scores are bounded.
func (s *evaluationService) CreateEvaluation(ctx context.Context, actor *model.User, input EvaluationInput) (*model.Evaluation, error) {
	if err := s.evaluator.Check(ctx, actor, access.NewEvaluationResource(input.TeamID, input.SubjectID), access.ActionCreate); err != nil {
		return nil, err
	}

	if input.Score < model.EvaluationMinScore || input.Score > model.EvaluationMaxScore {
		return nil, errors.ErrInvalidOperation
	}

	// The subject must belong to the evaluation's team, not just share
	// some team with the actor.
	member, err := s.memberships.IsMember(ctx, input.SubjectID, input.TeamID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.ErrNotInTeam
	}

	if input.TaskID != nil {
		task, err := s.tasks.FindByID(ctx, *input.TaskID)
		if err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrTaskNotFound
			}
			return nil, err
		}
		if task.TeamID != input.TeamID {
			return nil, errors.ErrInvalidOperation
		}
	}

	evaluation := &model.Evaluation{
		TeamID:      input.TeamID,
		SubjectID:   input.SubjectID,
		EvaluatorID: actor.ID,
		TaskID:      input.TaskID,
		Score:       input.Score,
		Notes:       input.Notes,
	}
	if err := s.evaluations.Create(ctx, evaluation); err != nil {
		return nil, err
	}
	return evaluation, nil
}

func (s *evaluationService) DeleteEvaluation(ctx context.Context, actor *model.User, evaluationID uuid.UUID) error {
	evaluation, err := s.evaluations.FindByID(ctx, evaluationID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEvaluationNotFound
		}
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.EvaluationResource(evaluation), access.ActionDelete); err != nil {
		return err
	}
	return s.evaluations.Delete(ctx, evaluationID)
}

// requireVisibility allows admins, the subject themselves, and teammates of
// the subject to read the subject's evaluations.
func (s *evaluationService) requireVisibility(ctx context.Context, actor *model.User, subjectID uuid.UUID) error {
	if actor.IsAdmin || actor.ID == subjectID {
		return nil
	}
	shared, err := s.memberships.ShareTeam(ctx, actor.ID, subjectID)
	if err != nil {
		return err
	}
	if !shared {
		return errors.ErrForbidden
	}
	return nil
}

func (s *evaluationService) ListForSubject(ctx context.Context, actor *model.User, subjectID uuid.UUID) ([]model.Evaluation, error) {
	if err := s.requireVisibility(ctx, actor, subjectID); err != nil {
		return nil, err
	}
	return s.evaluations.ListBySubject(ctx, subjectID)
}

func (s *evaluationService) ListByEvaluator(ctx context.Context, actor *model.User) ([]model.Evaluation, error) {
	return s.evaluations.ListByEvaluator(ctx, actor.ID)
}

func (s *evaluationService) ListForTask(ctx context.Context, actor *model.User, taskID uuid.UUID) ([]model.Evaluation, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.NewEvaluationResource(task.TeamID, uuid.Nil), access.ActionRead); err != nil {
		return nil, err
	}
	return s.evaluations.ListByTask(ctx, taskID)
}

// SubjectStats computes the count, exact decimal average and score
// distribution of a user's received evaluations.
func (s *evaluationService) SubjectStats(ctx context.Context, actor *model.User, subjectID uuid.UUID) (*EvaluationStats, error) {
	evaluations, err := s.ListForSubject(ctx, actor, subjectID)
	if err != nil {
		return nil, err
	}

	stats := &EvaluationStats{
		Count:        len(evaluations),
		AverageScore: "0",
		Distribution: make(map[int]int),
	}
	if len(evaluations) == 0 {
		return stats, nil
	}

	sum := decimal.Zero
	for _, e := range evaluations {
		sum = sum.Add(decimal.NewFromInt(int64(e.Score)))
		stats.Distribution[e.Score]++
	}
	stats.AverageScore = sum.Div(decimal.NewFromInt(int64(len(evaluations)))).Round(2).String()
	return stats, nil
}
