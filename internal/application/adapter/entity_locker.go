// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntityLocker serialises read, compute, persist sequences on a single entity
// across requests and processes.
type EntityLocker interface {
	// WithLock runs fn while holding the lock identified by key.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// HabitLockKey is the lock guarding a habit's check-ins and streak.
func HabitLockKey(habitID uuid.UUID) string {
	return "lock:habit:" + habitID.String()
}

// GoalLockKey is the lock guarding a goal's milestones and progress.
func GoalLockKey(goalID uuid.UUID) string {
	return "lock:goal:" + goalID.String()
}

// LedgerLockKey is the lock guarding a user's balance while an expense is admitted.
func LedgerLockKey(userID uuid.UUID) string {
	return "lock:ledger:" + userID.String()
}

// HabitAdmissionLockKey is the lock guarding the per-user habit cap and name uniqueness.
func HabitAdmissionLockKey(userID uuid.UUID) string {
	return "lock:habits:" + userID.String()
}

// Clock supplies the current time. Tests and the BDD suite swap it out.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
