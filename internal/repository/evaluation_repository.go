package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/model"
)

// EvaluationRepository defines evaluation persistence operations.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluation, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]model.Evaluation, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Evaluation{}).Error
}

func (r *evaluationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&evaluation).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	if err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	if err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at DESC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}
