// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueGoalCompletedEmail queues the congratulation sent when a goal reaches 100%.
func (s *Service) QueueGoalCompletedEmail(ctx context.Context, input adapter.QueueGoalCompletedInput) error {
	subject := fmt.Sprintf("Goal completed: %s", input.GoalTitle)

	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"goal_title": input.GoalTitle,
		"goals_url":  s.appBaseURL + "/goals",
	}

	job := entity.NewEmailJob(
		input.UserID,
		entity.TemplateGoalCompleted,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	return s.enqueue(ctx, job, "goal completed")
}

// QueueStreakMilestoneEmail queues the notice sent when a habit streak hits a milestone.
func (s *Service) QueueStreakMilestoneEmail(ctx context.Context, input adapter.QueueStreakMilestoneInput) error {
	subject := fmt.Sprintf("%d-day streak on %s", input.Streak, input.HabitName)

	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"habit_name": input.HabitName,
		"streak":     input.Streak,
		"habits_url": s.appBaseURL + "/habits",
	}

	job := entity.NewEmailJob(
		input.UserID,
		entity.TemplateStreakMilestone,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	return s.enqueue(ctx, job, "streak milestone")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, kind string) error {
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", kind),
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
