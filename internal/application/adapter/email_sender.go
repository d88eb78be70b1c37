// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing notification emails.
type EmailService interface {
	// QueueGoalCompletedEmail queues the congratulation sent when a goal reaches 100%.
	QueueGoalCompletedEmail(ctx context.Context, input QueueGoalCompletedInput) error

	// QueueStreakMilestoneEmail queues the notice sent when a habit streak hits a milestone.
	QueueStreakMilestoneEmail(ctx context.Context, input QueueStreakMilestoneInput) error
}

// QueueGoalCompletedInput represents the input for queueing a goal completed email.
type QueueGoalCompletedInput struct {
	UserID    uuid.UUID
	UserEmail string
	UserName  string
	GoalTitle string
}

// QueueStreakMilestoneInput represents the input for queueing a streak milestone email.
type QueueStreakMilestoneInput struct {
	UserID    uuid.UUID
	UserEmail string
	UserName  string
	HabitName string
	Streak    int
}
