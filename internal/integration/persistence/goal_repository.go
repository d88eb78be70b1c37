// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves goals of a user, newest first. A nil status returns every goal.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var goalModels []model.GoalModel
	result := query.Order("created_at DESC").Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a goal. Milestones must be removed first.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// milestoneRepository implements the adapter.MilestoneRepository interface.
type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository instance.
func NewMilestoneRepository(db *gorm.DB) adapter.MilestoneRepository {
	return &milestoneRepository{
		db: db,
	}
}

// Create creates a new milestone in the database.
func (r *milestoneRepository) Create(ctx context.Context, milestone *entity.Milestone) error {
	result := r.db.WithContext(ctx).Create(model.MilestoneFromEntity(milestone))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a milestone by its ID.
func (r *milestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	var milestoneModel model.MilestoneModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&milestoneModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMilestoneNotFound
		}
		return nil, result.Error
	}
	return milestoneModel.ToEntity(), nil
}

// FindByGoal retrieves milestones of a goal ordered by target date, undated last.
func (r *milestoneRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.Milestone, error) {
	var milestoneModels []model.MilestoneModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("target_date IS NULL, target_date ASC, created_at ASC").
		Find(&milestoneModels)
	if result.Error != nil {
		return nil, result.Error
	}

	milestones := make([]*entity.Milestone, len(milestoneModels))
	for i := range milestoneModels {
		milestones[i] = milestoneModels[i].ToEntity()
	}
	return milestones, nil
}

// Update updates an existing milestone in the database.
func (r *milestoneRepository) Update(ctx context.Context, milestone *entity.Milestone) error {
	result := r.db.WithContext(ctx).Save(model.MilestoneFromEntity(milestone))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a single milestone.
func (r *milestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MilestoneModel{}, "id = ?", id).Error
}

// DeleteByGoal removes every milestone of a goal.
func (r *milestoneRepository) DeleteByGoal(ctx context.Context, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("goal_id = ?", goalID).Delete(&model.MilestoneModel{}).Error
}
