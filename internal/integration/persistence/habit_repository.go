// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/integration/persistence/model"
)

// habitRepository implements the adapter.HabitRepository interface.
type habitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new habit repository instance.
func NewHabitRepository(db *gorm.DB) adapter.HabitRepository {
	return &habitRepository{
		db: db,
	}
}

// Create creates a new habit in the database.
func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	result := r.db.WithContext(ctx).Create(model.HabitFromEntity(habit))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a habit by its ID.
func (r *habitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habitModel model.HabitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&habitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitNotFound
		}
		return nil, result.Error
	}
	return habitModel.ToEntity(), nil
}

// FindByFilter retrieves habits, newest first.
func (r *habitRepository) FindByFilter(ctx context.Context, filter adapter.HabitFilter) ([]*entity.Habit, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return r.find(query.Order("created_at DESC"))
}

// FindAllActive retrieves active habits of every user.
func (r *habitRepository) FindAllActive(ctx context.Context) ([]*entity.Habit, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at ASC"))
}

func (r *habitRepository) find(query *gorm.DB) ([]*entity.Habit, error) {
	var habitModels []model.HabitModel
	if err := query.Find(&habitModels).Error; err != nil {
		return nil, err
	}

	habits := make([]*entity.Habit, len(habitModels))
	for i := range habitModels {
		habits[i] = habitModels[i].ToEntity()
	}
	return habits, nil
}

// CountActive returns the number of active habits of a user.
func (r *habitRepository) CountActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.HabitModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// ExistsByNameAndUser checks whether the user has another habit with that name.
func (r *habitRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.HabitModel{}).
		Where("name = ? AND user_id = ?", name, userID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing habit in the database.
func (r *habitRepository) Update(ctx context.Context, habit *entity.Habit) error {
	result := r.db.WithContext(ctx).Save(model.HabitFromEntity(habit))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a habit. Logs must be removed first.
func (r *habitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.HabitModel{}, "id = ?", id).Error
}

// habitLogRepository implements the adapter.HabitLogRepository interface.
type habitLogRepository struct {
	db *gorm.DB
}

// NewHabitLogRepository creates a new check-in repository instance.
func NewHabitLogRepository(db *gorm.DB) adapter.HabitLogRepository {
	return &habitLogRepository{
		db: db,
	}
}

// Create stores a check-in. The unique (habit_id, date_completed) index turns a
// concurrent duplicate into ErrAlreadyCheckedIn.
func (r *habitLogRepository) Create(ctx context.Context, log *entity.HabitLog) error {
	result := r.db.WithContext(ctx).Create(model.HabitLogFromEntity(log))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrAlreadyCheckedIn
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a check-in by its ID.
func (r *habitLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HabitLog, error) {
	var logModel model.HabitLogModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&logModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitLogNotFound
		}
		return nil, result.Error
	}
	return logModel.ToEntity(), nil
}

// FindByHabitAndDate retrieves the check-in of a habit on a date.
func (r *habitLogRepository) FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error) {
	var logModel model.HabitLogModel
	result := r.db.WithContext(ctx).
		Where("habit_id = ? AND date_completed = ?", habitID, date).
		First(&logModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitLogNotFound
		}
		return nil, result.Error
	}
	return logModel.ToEntity(), nil
}

// FindByHabit retrieves every check-in of a habit, newest first.
func (r *habitLogRepository) FindByHabit(ctx context.Context, habitID uuid.UUID) ([]*entity.HabitLog, error) {
	return r.find(r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("date_completed DESC"))
}

// FindByHabitsSince retrieves check-ins of the given habits dated on or after since.
func (r *habitLogRepository) FindByHabitsSince(ctx context.Context, habitIDs []uuid.UUID, since time.Time) ([]*entity.HabitLog, error) {
	if len(habitIDs) == 0 {
		return []*entity.HabitLog{}, nil
	}
	return r.find(r.db.WithContext(ctx).
		Where("habit_id IN ? AND date_completed >= ?", habitIDs, since).
		Order("date_completed DESC"))
}

func (r *habitLogRepository) find(query *gorm.DB) ([]*entity.HabitLog, error) {
	var logModels []model.HabitLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.HabitLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToEntity()
	}
	return logs, nil
}

// Delete removes a check-in.
func (r *habitLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.HabitLogModel{}, "id = ?", id).Error
}

// DeleteByHabit removes every check-in of a habit.
func (r *habitLogRepository) DeleteByHabit(ctx context.Context, habitID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("habit_id = ?", habitID).Delete(&model.HabitLogModel{}).Error
}
