package habit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/adapter/fake"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
)

type fixture struct {
	store  *fake.Store
	clock  *fake.Clock
	locker *fake.Locker
	email  *fake.EmailService
	user   *entity.User
	config Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fake.NewStore()
	user := entity.NewUser("grace", "grace@example.com", "hashed:secret")
	require.NoError(t, store.Users().Create(context.Background(), user))
	return &fixture{
		store:  store,
		clock:  fake.NewClock(time.Date(2026, time.April, 20, 21, 15, 0, 0, time.UTC)),
		locker: fake.NewLocker(),
		email:  &fake.EmailService{},
		user:   user,
		config: DefaultConfig(),
	}
}

func (f *fixture) deps() CheckInDeps {
	return CheckInDeps{
		HabitRepo:    f.store.Habits(),
		LogRepo:      f.store.HabitLogs(),
		UserRepo:     f.store.Users(),
		EmailService: f.email,
		Locker:       f.locker,
		Clock:        f.clock,
	}
}

func (f *fixture) habit(t *testing.T, name string, freq entity.HabitFrequency) *entity.Habit {
	t.Helper()
	out, err := NewCreateHabitUseCase(f.store.Habits(), f.locker, f.config).Execute(context.Background(), CreateHabitInput{
		UserID:    f.user.ID,
		Name:      name,
		Frequency: freq,
	})
	require.NoError(t, err)
	return out.Habit
}

func (f *fixture) today() time.Time {
	return time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) daysAgo(n int) *time.Time {
	d := f.today().AddDate(0, 0, -n)
	return &d
}

func habitCode(t *testing.T, err error) domainerror.HabitErrorCode {
	t.Helper()
	var habitErr *domainerror.HabitError
	require.True(t, errors.As(err, &habitErr), "expected HabitError, got %v", err)
	return habitErr.Code
}

func TestCreateHabit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCreateHabitUseCase(f.store.Habits(), f.locker, f.config)

	out, err := uc.Execute(ctx, CreateHabitInput{UserID: f.user.ID, Name: " Read ", ReminderTime: "07:30"})
	require.NoError(t, err)
	assert.Equal(t, "Read", out.Habit.Name)
	assert.Equal(t, entity.HabitFrequencyDaily, out.Habit.Frequency)
	assert.Equal(t, 1, out.Habit.TargetCount)
	assert.True(t, out.Habit.IsActive)
	assert.Contains(t, f.locker.Keys, adapter.HabitAdmissionLockKey(f.user.ID))

	tests := []struct {
		name     string
		input    CreateHabitInput
		wantCode domainerror.HabitErrorCode
	}{
		{"blank name", CreateHabitInput{UserID: f.user.ID, Name: ""}, domainerror.ErrCodeHabitNameRequired},
		{"duplicate name", CreateHabitInput{UserID: f.user.ID, Name: "Read"}, domainerror.ErrCodeHabitNameExists},
		{"bad frequency", CreateHabitInput{UserID: f.user.ID, Name: "Swim", Frequency: "Hourly"}, domainerror.ErrCodeInvalidHabitFrequency},
		{"bad reminder", CreateHabitInput{UserID: f.user.ID, Name: "Swim", ReminderTime: "25:99"}, domainerror.ErrCodeInvalidReminderTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.Equal(t, tt.wantCode, habitCode(t, err))
		})
	}
}

func TestCreateHabit_ActiveCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCreateHabitUseCase(f.store.Habits(), f.locker, f.config)

	for i := 0; i < service.MaxActiveHabits; i++ {
		f.habit(t, fmt.Sprintf("habit %d", i), entity.HabitFrequencyDaily)
	}

	_, err := uc.Execute(ctx, CreateHabitInput{UserID: f.user.ID, Name: "one too many"})
	assert.Equal(t, domainerror.ErrCodeHabitLimitReached, habitCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrHabitLimitReached)

	t.Run("deactivating frees a slot and reactivation is capped", func(t *testing.T) {
		toggle := NewToggleHabitUseCase(f.store.Habits(), f.locker, f.clock, f.config)
		habits, err := f.store.Habits().FindByFilter(ctx, adapter.HabitFilter{UserID: f.user.ID})
		require.NoError(t, err)

		paused, err := toggle.Execute(ctx, ToggleHabitInput{HabitID: habits[0].ID, UserID: f.user.ID})
		require.NoError(t, err)
		assert.False(t, paused.IsActive)

		_, err = uc.Execute(ctx, CreateHabitInput{UserID: f.user.ID, Name: "replacement"})
		require.NoError(t, err)

		_, err = toggle.Execute(ctx, ToggleHabitInput{HabitID: paused.ID, UserID: f.user.ID})
		assert.Equal(t, domainerror.ErrCodeHabitLimitReached, habitCode(t, err))
	})

	t.Run("other users are not affected", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateHabitInput{UserID: uuid.New(), Name: "habit 0"})
		assert.NoError(t, err)
	})
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Meditate", entity.HabitFrequencyDaily)
	uc := NewCheckInUseCase(f.deps())

	for _, n := range []int{2, 1} {
		out, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
		assert.Equal(t, service.CheckInRecorded, out.Outcome)
		assert.Zero(t, out.CurrentStreak, "nothing logged today yet")
	}

	out, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Notes: "10 minutes"})
	require.NoError(t, err)
	assert.Equal(t, service.CheckInRecorded, out.Outcome)
	assert.Equal(t, 3, out.CurrentStreak)
	assert.Equal(t, 3, out.LongestStreak)
	require.NotNil(t, out.Log)
	assert.Equal(t, f.today(), out.Log.DateCompleted)
	assert.Equal(t, "10 minutes", out.Log.Notes)

	stored, err := f.store.Habits().FindByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentStreak)

	t.Run("same date twice is reported, not failed", func(t *testing.T) {
		again, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID})
		require.NoError(t, err)
		assert.Equal(t, service.CheckInAlreadyRecorded, again.Outcome)
		assert.Nil(t, again.Log)
		assert.Equal(t, 3, again.CurrentStreak)

		logs, err := f.store.HabitLogs().FindByHabit(ctx, h.ID)
		require.NoError(t, err)
		assert.Len(t, logs, 3)
	})

	t.Run("future date", func(t *testing.T) {
		tomorrow := f.today().AddDate(0, 0, 1)
		_, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: &tomorrow})
		assert.Equal(t, domainerror.ErrCodeInvalidCheckInDate, habitCode(t, err))
	})

	t.Run("other user", func(t *testing.T) {
		_, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeUnauthorizedHabitAccess, habitCode(t, err))
	})

	assert.Contains(t, f.locker.Keys, adapter.HabitLockKey(h.ID))
}

func TestCheckIn_StreakMilestoneEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Walk", entity.HabitFrequencyDaily)
	uc := NewCheckInUseCase(f.deps())

	for n := 6; n >= 1; n-- {
		_, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
	}
	assert.Empty(t, f.email.StreakMilestone)

	out, err := uc.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 7, out.CurrentStreak)
	require.Len(t, f.email.StreakMilestone, 1)
	assert.Equal(t, "Walk", f.email.StreakMilestone[0].HabitName)
	assert.Equal(t, 7, f.email.StreakMilestone[0].Streak)
}

func TestRemoveCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Stretch", entity.HabitFrequencyDaily)
	checkIn := NewCheckInUseCase(f.deps())
	uc := NewRemoveCheckInUseCase(f.deps())

	var middle *entity.HabitLog
	for n := 2; n >= 0; n-- {
		out, err := checkIn.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
		if n == 1 {
			middle = out.Log
		}
	}

	_, err := uc.Execute(ctx, RemoveCheckInInput{LogID: middle.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeUnauthorizedHabitAccess, habitCode(t, err))

	updated, err := uc.Execute(ctx, RemoveCheckInInput{LogID: middle.ID, UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 3, updated.LongestStreak)

	_, err = uc.Execute(ctx, RemoveCheckInInput{LogID: middle.ID, UserID: f.user.ID})
	assert.Equal(t, domainerror.ErrCodeHabitLogNotFound, habitCode(t, err))
}

func TestListAndGetHabits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	done := f.habit(t, "Journal", entity.HabitFrequencyDaily)
	pending := f.habit(t, "Gym", entity.HabitFrequencyWeekly)
	checkIn := NewCheckInUseCase(f.deps())

	for n := 0; n < 3; n++ {
		_, err := checkIn.Execute(ctx, CheckInInput{HabitID: done.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
	}
	// Outside the 30 day window.
	_, err := checkIn.Execute(ctx, CheckInInput{HabitID: done.ID, UserID: f.user.ID, Date: f.daysAgo(45)})
	require.NoError(t, err)

	_, err = NewToggleHabitUseCase(f.store.Habits(), f.locker, f.clock, f.config).Execute(ctx, ToggleHabitInput{HabitID: pending.ID, UserID: f.user.ID})
	require.NoError(t, err)

	list := NewListHabitsUseCase(f.store.Habits(), f.store.HabitLogs(), f.clock, f.config)
	active, err := list.Execute(ctx, ListHabitsInput{UserID: f.user.ID})
	require.NoError(t, err)
	require.Len(t, active.Habits, 1)
	assert.True(t, active.Habits[0].CompletedToday)
	assert.InDelta(t, 10.0, active.Habits[0].CompletionRate, 0.001)

	all, err := list.Execute(ctx, ListHabitsInput{UserID: f.user.ID, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all.Habits, 2)

	got, err := NewGetHabitUseCase(f.store.Habits(), f.store.HabitLogs(), f.clock, f.config).Execute(ctx, GetHabitInput{HabitID: done.ID, UserID: f.user.ID})
	require.NoError(t, err)
	assert.Len(t, got.RecentLogs, 3)
	assert.True(t, got.CompletedToday)
	assert.InDelta(t, 10.0, got.CompletionRate, 0.001)
}

func TestUpdateHabit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Piano", entity.HabitFrequencyDaily)
	f.habit(t, "Guitar", entity.HabitFrequencyDaily)
	uc := NewUpdateHabitUseCase(f.store.Habits(), f.store.HabitLogs(), f.locker, f.clock)

	taken := "Guitar"
	_, err := uc.Execute(ctx, UpdateHabitInput{HabitID: h.ID, UserID: f.user.ID, Name: &taken})
	assert.Equal(t, domainerror.ErrCodeHabitNameExists, habitCode(t, err))

	same := "Piano"
	_, err = uc.Execute(ctx, UpdateHabitInput{HabitID: h.ID, UserID: f.user.ID, Name: &same})
	require.NoError(t, err, "keeping its own name is allowed")

	// Today and seven days ago: a daily streak of 1, a weekly streak of 2.
	checkIn := NewCheckInUseCase(f.deps())
	for _, n := range []int{7, 0} {
		_, err := checkIn.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
	}

	weekly := entity.HabitFrequencyWeekly
	out, err := uc.Execute(ctx, UpdateHabitInput{HabitID: h.ID, UserID: f.user.ID, Frequency: &weekly})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Habit.CurrentStreak)
	assert.Equal(t, 2, out.Habit.LongestStreak)
}

func TestDeleteHabit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Floss", entity.HabitFrequencyDaily)
	_, err := NewCheckInUseCase(f.deps()).Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID})
	require.NoError(t, err)

	uc := NewDeleteHabitUseCase(f.store.Habits(), f.store.HabitLogs(), f.locker)
	require.NoError(t, uc.Execute(ctx, DeleteHabitInput{HabitID: h.ID, UserID: f.user.ID}))

	logs, err := f.store.HabitLogs().FindByHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	err = uc.Execute(ctx, DeleteHabitInput{HabitID: h.ID, UserID: f.user.ID})
	assert.Equal(t, domainerror.ErrCodeHabitNotFound, habitCode(t, err))
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.habit(t, "A", entity.HabitFrequencyDaily)
	b := f.habit(t, "B", entity.HabitFrequencyDaily)
	checkIn := NewCheckInUseCase(f.deps())

	for _, in := range []CheckInInput{
		{HabitID: a.ID, UserID: f.user.ID},
		{HabitID: b.ID, UserID: f.user.ID},
		{HabitID: a.ID, UserID: f.user.ID, Date: f.daysAgo(120)},
	} {
		_, err := checkIn.Execute(ctx, in)
		require.NoError(t, err)
	}

	out, err := NewCalendarUseCase(f.store.Habits(), f.store.HabitLogs(), f.clock).Execute(ctx, CalendarInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Len(t, out.Habits, 2)
	require.Len(t, out.Days, 1)
	assert.Len(t, out.Days["2026-04-20"], 2)
}

func TestRecomputeStreaks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.habit(t, "Run", entity.HabitFrequencyDaily)
	checkIn := NewCheckInUseCase(f.deps())
	for n := 1; n >= 0; n-- {
		_, err := checkIn.Execute(ctx, CheckInInput{HabitID: h.ID, UserID: f.user.ID, Date: f.daysAgo(n)})
		require.NoError(t, err)
	}

	uc := NewRecomputeStreaksUseCase(f.store.Habits(), f.store.HabitLogs(), f.locker, f.clock)
	out, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Checked)
	assert.Zero(t, out.Updated)

	f.clock.Set(f.clock.Now().AddDate(0, 0, 1))
	out, err = uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Updated)

	stored, err := f.store.Habits().FindByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.CurrentStreak)
	assert.Equal(t, 2, stored.LongestStreak)
}
