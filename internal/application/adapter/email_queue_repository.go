// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/self-focus/backend/internal/domain/entity"
)

// EmailQueueRepository persists outgoing notification jobs. Reads take the
// caller's notion of now so the worker decides what is due and what has aged out.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// Due returns up to limit pending jobs scheduled at or before now, oldest first.
	Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	// PurgeSent deletes sent jobs processed before cutoff and reports how many
	// rows went.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}
