package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
)

func milestones(completed, total int) []*entity.Milestone {
	goalID := uuid.New()
	out := make([]*entity.Milestone, 0, total)
	for i := 0; i < total; i++ {
		m := entity.NewMilestone(goalID, "m", "", nil)
		if i < completed {
			m.MarkComplete(time.Now())
		}
		out = append(out, m)
	}
	return out
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name         string
		completed    int
		total        int
		want         int
		wantComplete bool
	}{
		{"empty set", 0, 0, 0, false},
		{"none completed", 0, 4, 0, false},
		{"one of three truncates", 1, 3, 33, false},
		{"two of three truncates", 2, 3, 66, false},
		{"half", 1, 2, 50, false},
		{"ninety nine of hundred", 99, 100, 99, false},
		{"all completed", 5, 5, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(milestones(tt.completed, tt.total))

			if got.Percentage != tt.want {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.want)
			}
			if got.Percentage < 0 || got.Percentage > 100 {
				t.Errorf("Percentage %d outside [0, 100]", got.Percentage)
			}
			switch {
			case tt.wantComplete && got.StatusHint == nil:
				t.Fatal("StatusHint = nil, want Completed")
			case tt.wantComplete && *got.StatusHint != entity.GoalStatusCompleted:
				t.Errorf("StatusHint = %s, want Completed", *got.StatusHint)
			case !tt.wantComplete && got.StatusHint != nil:
				t.Errorf("StatusHint = %s, want nil", *got.StatusHint)
			}
		})
	}
}

func TestComputeProgress_Idempotent(t *testing.T) {
	ms := milestones(2, 7)
	if first, second := ComputeProgress(ms), ComputeProgress(ms); !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeProgress changed between calls: %+v then %+v", first, second)
	}
}

func TestApplyProgress(t *testing.T) {
	t.Run("completes goal at 100", func(t *testing.T) {
		goal := entity.NewGoal(uuid.New(), "Run a marathon", "", nil)

		changed := ApplyProgress(goal, ComputeProgress(milestones(2, 2)))

		if !changed {
			t.Error("ApplyProgress() = false, want a completion transition")
		}
		if goal.ProgressPercentage != 100 || goal.Status != entity.GoalStatusCompleted {
			t.Errorf("goal = %d%% %s, want 100%% Completed", goal.ProgressPercentage, goal.Status)
		}
	})

	t.Run("never demotes a completed goal", func(t *testing.T) {
		goal := entity.NewGoal(uuid.New(), "Read 12 books", "", nil)
		goal.Status = entity.GoalStatusCompleted
		goal.ProgressPercentage = 100

		changed := ApplyProgress(goal, ComputeProgress(milestones(1, 2)))

		if changed {
			t.Error("ApplyProgress() = true, want false")
		}
		if goal.ProgressPercentage != 50 || goal.Status != entity.GoalStatusCompleted {
			t.Errorf("goal = %d%% %s, want 50%% Completed", goal.ProgressPercentage, goal.Status)
		}
	})

	t.Run("already completed is not a transition", func(t *testing.T) {
		goal := entity.NewGoal(uuid.New(), "Learn Go", "", nil)
		goal.Status = entity.GoalStatusCompleted

		if ApplyProgress(goal, ComputeProgress(milestones(3, 3))) {
			t.Error("ApplyProgress() = true for a goal that was already completed")
		}
	})

	t.Run("paused goal keeps status below 100", func(t *testing.T) {
		goal := entity.NewGoal(uuid.New(), "Save", "", nil)
		goal.Status = entity.GoalStatusPaused

		ApplyProgress(goal, ComputeProgress(milestones(1, 4)))

		if goal.ProgressPercentage != 25 || goal.Status != entity.GoalStatusPaused {
			t.Errorf("goal = %d%% %s, want 25%% Paused", goal.ProgressPercentage, goal.Status)
		}
	})
}

func TestDaysRemaining(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("no target date", func(t *testing.T) {
		if got := DaysRemaining(nil, today); got != nil {
			t.Errorf("DaysRemaining(nil) = %d, want nil", *got)
		}
	})

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"future", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 10},
		{"today", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"past", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysRemaining(&tt.target, today)
			if got == nil {
				t.Fatal("DaysRemaining() = nil")
			}
			if *got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", *got, tt.want)
			}
		})
	}
}
