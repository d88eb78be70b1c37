package goal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/adapter/fake"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

type fixture struct {
	store  *fake.Store
	clock  *fake.Clock
	locker *fake.Locker
	email  *fake.EmailService
	user   *entity.User
	deps   MilestoneDeps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fake.NewStore()
	user := entity.NewUser("ada", "ada@example.com", "hashed:secret")
	require.NoError(t, store.Users().Create(context.Background(), user))

	clock := fake.NewClock(time.Date(2026, time.May, 10, 9, 0, 0, 0, time.UTC))
	locker := fake.NewLocker()
	email := &fake.EmailService{}
	return &fixture{
		store:  store,
		clock:  clock,
		locker: locker,
		email:  email,
		user:   user,
		deps: MilestoneDeps{
			GoalRepo:      store.Goals(),
			MilestoneRepo: store.Milestones(),
			UserRepo:      store.Users(),
			EmailService:  email,
			Locker:        locker,
			Clock:         clock,
		},
	}
}

func (f *fixture) goal(t *testing.T, title string) *entity.Goal {
	t.Helper()
	out, err := NewCreateGoalUseCase(f.store.Goals()).Execute(context.Background(), CreateGoalInput{
		UserID: f.user.ID,
		Title:  title,
	})
	require.NoError(t, err)
	return out.Goal
}

func (f *fixture) milestone(t *testing.T, goalID uuid.UUID, title string) *entity.Milestone {
	t.Helper()
	out, err := NewCreateMilestoneUseCase(f.deps).Execute(context.Background(), CreateMilestoneInput{
		GoalID: goalID,
		UserID: f.user.ID,
		Title:  title,
	})
	require.NoError(t, err)
	return out.Milestone
}

func goalCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	require.True(t, errors.As(err, &goalErr), "expected GoalError, got %v", err)
	return goalErr.Code
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCreateGoalUseCase(f.store.Goals())

	target := time.Date(2026, time.December, 31, 18, 0, 0, 0, time.UTC)
	out, err := uc.Execute(ctx, CreateGoalInput{UserID: f.user.ID, Title: " Run a marathon ", TargetDate: &target})
	require.NoError(t, err)
	assert.Equal(t, "Run a marathon", out.Goal.Title)
	assert.Equal(t, entity.GoalStatusActive, out.Goal.Status)
	assert.Zero(t, out.Goal.ProgressPercentage)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), *out.Goal.TargetDate)

	tests := []struct {
		name     string
		input    CreateGoalInput
		wantCode domainerror.GoalErrorCode
	}{
		{"blank title", CreateGoalInput{UserID: f.user.ID, Title: "  "}, domainerror.ErrCodeGoalTitleRequired},
		{"long title", CreateGoalInput{UserID: f.user.ID, Title: strings.Repeat("t", MaxTitleLength+1)}, domainerror.ErrCodeGoalTitleTooLong},
		{"long description", CreateGoalInput{UserID: f.user.ID, Title: "ok", Description: strings.Repeat("d", MaxGoalDescriptionLength+1)}, domainerror.ErrCodeGoalDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.Equal(t, tt.wantCode, goalCode(t, err))
		})
	}
}

func TestMilestoneProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.goal(t, "Learn Go")
	complete := NewSetMilestoneCompletionUseCase(f.deps)

	m1 := f.milestone(t, goal.ID, "Tour")
	m2 := f.milestone(t, goal.ID, "Effective Go")
	m3 := f.milestone(t, goal.ID, "Ship a service")

	out, err := complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: m1.ID, UserID: f.user.ID, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 33, out.Goal.ProgressPercentage)
	assert.Equal(t, entity.GoalStatusActive, out.Goal.Status)
	require.NotNil(t, out.Milestone.CompletedAt)
	assert.Equal(t, f.clock.Now(), *out.Milestone.CompletedAt)

	_, err = complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: m2.ID, UserID: f.user.ID, Completed: true})
	require.NoError(t, err)
	out, err = complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: m3.ID, UserID: f.user.ID, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Goal.ProgressPercentage)
	assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Status)
	require.Len(t, f.email.GoalCompleted, 1)
	assert.Equal(t, "Learn Go", f.email.GoalCompleted[0].GoalTitle)
	assert.Equal(t, f.user.Email, f.email.GoalCompleted[0].UserEmail)

	t.Run("reopening keeps the goal completed", func(t *testing.T) {
		out, err := complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: m3.ID, UserID: f.user.ID, Completed: false})
		require.NoError(t, err)
		assert.Equal(t, 66, out.Goal.ProgressPercentage)
		assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Status)
		assert.Nil(t, out.Milestone.CompletedAt)
	})

	t.Run("completing again does not email twice", func(t *testing.T) {
		_, err := complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: m3.ID, UserID: f.user.ID, Completed: true})
		require.NoError(t, err)
		assert.Len(t, f.email.GoalCompleted, 1)
	})

	t.Run("adding a milestone lowers the percentage", func(t *testing.T) {
		f.milestone(t, goal.ID, "Write a book")
		stored, err := f.store.Goals().FindByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, stored.ProgressPercentage)
		assert.Equal(t, entity.GoalStatusCompleted, stored.Status)
	})

	assert.Contains(t, f.locker.Keys, adapter.GoalLockKey(goal.ID))
}

func TestDeleteMilestone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.goal(t, "Read more")
	complete := NewSetMilestoneCompletionUseCase(f.deps)
	uc := NewDeleteMilestoneUseCase(f.deps)

	done := f.milestone(t, goal.ID, "Book one")
	open := f.milestone(t, goal.ID, "Book two")
	_, err := complete.Execute(ctx, SetMilestoneCompletionInput{MilestoneID: done.ID, UserID: f.user.ID, Completed: true})
	require.NoError(t, err)

	t.Run("other user", func(t *testing.T) {
		_, err := uc.Execute(ctx, DeleteMilestoneInput{MilestoneID: open.ID, UserID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalCode(t, err))
	})

	updated, err := uc.Execute(ctx, DeleteMilestoneInput{MilestoneID: open.ID, UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.ProgressPercentage)
	assert.Equal(t, entity.GoalStatusCompleted, updated.Status)

	t.Run("removing the last milestone resets progress but not status", func(t *testing.T) {
		updated, err := uc.Execute(ctx, DeleteMilestoneInput{MilestoneID: done.ID, UserID: f.user.ID})
		require.NoError(t, err)
		assert.Zero(t, updated.ProgressPercentage)
		assert.Equal(t, entity.GoalStatusCompleted, updated.Status)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := uc.Execute(ctx, DeleteMilestoneInput{MilestoneID: uuid.New(), UserID: f.user.ID})
		assert.Equal(t, domainerror.ErrCodeMilestoneNotFound, goalCode(t, err))
	})
}

func TestGetAndListGoals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	target := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)
	created, err := NewCreateGoalUseCase(f.store.Goals()).Execute(ctx, CreateGoalInput{UserID: f.user.ID, Title: "Trip", TargetDate: &target})
	require.NoError(t, err)
	paused := f.goal(t, "Side project")
	_, err = NewUpdateGoalStatusUseCase(f.store.Goals(), f.locker, f.clock).Execute(ctx, UpdateGoalStatusInput{
		GoalID: paused.ID, UserID: f.user.ID, Status: entity.GoalStatusPaused,
	})
	require.NoError(t, err)

	late := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err = NewCreateMilestoneUseCase(f.deps).Execute(ctx, CreateMilestoneInput{GoalID: created.Goal.ID, UserID: f.user.ID, Title: "Late", TargetDate: &late})
	require.NoError(t, err)
	early := time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC)
	_, err = NewCreateMilestoneUseCase(f.deps).Execute(ctx, CreateMilestoneInput{GoalID: created.Goal.ID, UserID: f.user.ID, Title: "Early", TargetDate: &early})
	require.NoError(t, err)
	f.milestone(t, created.Goal.ID, "Undated")

	got, err := NewGetGoalUseCase(f.store.Goals(), f.store.Milestones(), f.clock).Execute(ctx, GetGoalInput{GoalID: created.Goal.ID, UserID: f.user.ID})
	require.NoError(t, err)
	require.Len(t, got.Milestones, 3)
	assert.Equal(t, "Early", got.Milestones[0].Title)
	assert.Equal(t, "Late", got.Milestones[1].Title)
	assert.Equal(t, "Undated", got.Milestones[2].Title)
	require.NotNil(t, got.DaysRemaining)
	assert.Equal(t, 10, *got.DaysRemaining)

	list := NewListGoalsUseCase(f.store.Goals(), f.clock)
	all, err := list.Execute(ctx, ListGoalsInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Len(t, all.Goals, 2)

	status := entity.GoalStatusPaused
	onlyPaused, err := list.Execute(ctx, ListGoalsInput{UserID: f.user.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, onlyPaused.Goals, 1)
	assert.Equal(t, "Side project", onlyPaused.Goals[0].Goal.Title)
	assert.Nil(t, onlyPaused.Goals[0].DaysRemaining)

	bogus := entity.GoalStatus("Abandoned")
	_, err = list.Execute(ctx, ListGoalsInput{UserID: f.user.ID, Status: &bogus})
	assert.Equal(t, domainerror.ErrCodeInvalidGoalStatus, goalCode(t, err))

	_, err = NewGetGoalUseCase(f.store.Goals(), f.store.Milestones(), f.clock).Execute(ctx, GetGoalInput{GoalID: created.Goal.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalCode(t, err))
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.goal(t, "Old title")
	uc := NewUpdateGoalUseCase(f.store.Goals(), f.locker, f.clock)

	title := "New title"
	target := time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)
	out, err := uc.Execute(ctx, UpdateGoalInput{GoalID: goal.ID, UserID: f.user.ID, Title: &title, TargetDate: &target})
	require.NoError(t, err)
	assert.Equal(t, "New title", out.Goal.Title)
	require.NotNil(t, out.Goal.TargetDate)

	out, err = uc.Execute(ctx, UpdateGoalInput{GoalID: goal.ID, UserID: f.user.ID, ClearTargetDate: true})
	require.NoError(t, err)
	assert.Nil(t, out.Goal.TargetDate)

	blank := ""
	_, err = uc.Execute(ctx, UpdateGoalInput{GoalID: goal.ID, UserID: f.user.ID, Title: &blank})
	assert.Equal(t, domainerror.ErrCodeGoalTitleRequired, goalCode(t, err))

	_, err = NewUpdateGoalStatusUseCase(f.store.Goals(), f.locker, f.clock).Execute(ctx, UpdateGoalStatusInput{
		GoalID: goal.ID, UserID: f.user.ID, Status: "Done",
	})
	assert.Equal(t, domainerror.ErrCodeInvalidGoalStatus, goalCode(t, err))
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.goal(t, "Temporary")
	f.milestone(t, goal.ID, "one")
	f.milestone(t, goal.ID, "two")
	uc := NewDeleteGoalUseCase(f.store.Goals(), f.store.Milestones(), f.locker)

	err := uc.Execute(ctx, DeleteGoalInput{GoalID: goal.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalCode(t, err))

	require.NoError(t, uc.Execute(ctx, DeleteGoalInput{GoalID: goal.ID, UserID: f.user.ID}))
	milestones, err := f.store.Milestones().FindByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, milestones)

	err = uc.Execute(ctx, DeleteGoalInput{GoalID: goal.ID, UserID: f.user.ID})
	assert.Equal(t, domainerror.ErrCodeGoalNotFound, goalCode(t, err))
}
