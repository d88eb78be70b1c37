package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/infra/db"
	"github.com/self-focus/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.NewSQLiteConnection(db.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, database.Migrate())
	t.Cleanup(func() { _ = database.Close() })
	return database.DB()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *entity.User {
	t.Helper()
	user := entity.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewUserRepository(gdb)

	user := seedUser(t, gdb, "maria")

	byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, user.Email, byName.Email)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	exists, err := repo.ExistsByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	user.RecordLogin(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Update(ctx, user))
	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, reloaded.LastLoginAt.Equal(*user.LastLoginAt))

	seedUser(t, gdb, "joao")
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewCategoryRepository(gdb)
	user := seedUser(t, gdb, "maria")

	seeds := []*entity.Category{
		entity.NewCategory(user.ID, "Salary", "#22C55E", "💰", true),
		entity.NewCategory(user.ID, "Food & Dining", "#EF4444", "🍽️", true),
	}
	require.NoError(t, repo.CreateBatch(ctx, seeds))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	err := repo.Create(ctx, entity.NewCategory(user.ID, "Salary", "#000000", "", false))
	assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)

	// Another user may reuse the name.
	other := seedUser(t, gdb, "joao")
	require.NoError(t, repo.Create(ctx, entity.NewCategory(other.ID, "Salary", "#000000", "", false)))

	list, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Food & Dining", list[0].Name)
	assert.Equal(t, "Salary", list[1].Name)
	assert.True(t, list[1].IsDefault)

	exists, err := repo.ExistsByNameAndUser(ctx, "Salary", user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	txnRepo := NewTransactionRepository(gdb)
	require.NoError(t, txnRepo.Create(ctx, entity.NewTransaction(user.ID, seeds[0].ID, decimal.NewFromInt(10), entity.TransactionTypeIncome, "", day(2026, 1, 1), "")))
	count, err := repo.CountTransactions(ctx, seeds[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, seeds[1].ID))
	_, err = repo.FindByID(ctx, seeds[1].ID)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	user := seedUser(t, gdb, "maria")
	category := entity.NewCategory(user.ID, "Food", "#EF4444", "", false)
	require.NoError(t, NewCategoryRepository(gdb).Create(ctx, category))

	create := func(amount string, typ entity.TransactionType, date time.Time) *entity.Transaction {
		txn := entity.NewTransaction(user.ID, category.ID, decimal.RequireFromString(amount), typ, "t", date, "")
		require.NoError(t, repo.Create(ctx, txn))
		return txn
	}
	income := create("1000.00", entity.TransactionTypeIncome, day(2026, 1, 1))
	create("45.50", entity.TransactionTypeExpense, day(2026, 1, 15))
	latest := create("12.25", entity.TransactionTypeExpense, day(2026, 2, 1))

	all, err := repo.FindByUser(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, latest.ID, all[0].ID)
	assert.Equal(t, income.ID, all[2].ID)
	assert.True(t, all[2].Amount.Equal(decimal.RequireFromString("1000")))
	assert.True(t, all[1].Amount.Equal(decimal.RequireFromString("45.5")))
	assert.Equal(t, day(2026, 1, 15), all[1].Date)

	start, end := day(2026, 1, 1), day(2026, 1, 15)
	january, err := repo.FindByUser(ctx, user.ID, &start, &end)
	require.NoError(t, err)
	assert.Len(t, january, 2)

	expense := entity.TransactionTypeExpense
	page, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: user.ID, Type: &expense}, adapter.TransactionPagination{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, latest.ID, page.Transactions[0].Transaction.ID)
	require.NotNil(t, page.Transactions[0].Category)
	assert.Equal(t, "Food", page.Transactions[0].Category.Name)

	withCategory, err := repo.FindByIDWithCategory(ctx, income.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, withCategory.Category.ID)

	latest.Amount = decimal.RequireFromString("20.00")
	latest.Description = "lunch"
	require.NoError(t, repo.Update(ctx, latest))
	updated, err := repo.FindByID(ctx, latest.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch", updated.Description)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(20)))

	exported, err := repo.FindAllWithCategory(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, exported, 3)

	require.NoError(t, repo.Delete(ctx, income.ID))
	_, err = repo.FindByID(ctx, income.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestGoalAndMilestoneRepositories(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	goals := NewGoalRepository(gdb)
	milestones := NewMilestoneRepository(gdb)
	user := seedUser(t, gdb, "maria")

	target := day(2026, 12, 31)
	goal := entity.NewGoal(user.ID, "Run a marathon", "", &target)
	require.NoError(t, goals.Create(ctx, goal))

	paused := entity.NewGoal(user.ID, "Learn piano", "", nil)
	paused.Status = entity.GoalStatusPaused
	paused.CreatedAt = goal.CreatedAt.Add(time.Second)
	require.NoError(t, goals.Create(ctx, paused))

	list, err := goals.FindByUser(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, paused.ID, list[0].ID)

	status := entity.GoalStatusPaused
	filtered, err := goals.FindByUser(ctx, user.ID, &status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, paused.ID, filtered[0].ID)

	late, early := day(2026, 9, 1), day(2026, 3, 1)
	undated := entity.NewMilestone(goal.ID, "Buy shoes", "", nil)
	second := entity.NewMilestone(goal.ID, "Half marathon", "", &late)
	first := entity.NewMilestone(goal.ID, "10k", "", &early)
	for _, m := range []*entity.Milestone{undated, second, first} {
		require.NoError(t, milestones.Create(ctx, m))
	}

	ordered, err := milestones.FindByGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, first.ID, ordered[0].ID)
	assert.Equal(t, second.ID, ordered[1].ID)
	assert.Equal(t, undated.ID, ordered[2].ID)

	first.MarkComplete(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, milestones.Update(ctx, first))
	reloaded, err := milestones.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsCompleted)
	require.NotNil(t, reloaded.CompletedAt)

	goal.ProgressPercentage = 33
	require.NoError(t, goals.Update(ctx, goal))
	reloadedGoal, err := goals.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, reloadedGoal.ProgressPercentage)
	require.NotNil(t, reloadedGoal.TargetDate)
	assert.Equal(t, target, *reloadedGoal.TargetDate)

	require.NoError(t, milestones.Delete(ctx, undated.ID))
	_, err = milestones.FindByID(ctx, undated.ID)
	assert.ErrorIs(t, err, domainerror.ErrMilestoneNotFound)

	require.NoError(t, milestones.DeleteByGoal(ctx, goal.ID))
	require.NoError(t, goals.Delete(ctx, goal.ID))
	remaining, err := milestones.FindByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	_, err = goals.FindByID(ctx, goal.ID)
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}

func TestHabitRepositories(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	habits := NewHabitRepository(gdb)
	logs := NewHabitLogRepository(gdb)
	user := seedUser(t, gdb, "maria")

	read := entity.NewHabit(user.ID, "Read", "", entity.HabitFrequencyDaily, 1, "07:30")
	require.NoError(t, habits.Create(ctx, read))
	gym := entity.NewHabit(user.ID, "Gym", "", entity.HabitFrequencyWeekly, 3, "")
	gym.IsActive = false
	gym.CreatedAt = read.CreatedAt.Add(time.Second)
	require.NoError(t, habits.Create(ctx, gym))

	// An archived habit must be stored as archived, not as the column default.
	stored, err := habits.FindByID(ctx, gym.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := habits.CountActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	all, err := habits.FindByFilter(ctx, adapter.HabitFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, gym.ID, all[0].ID)

	isActive := true
	onlyActive, err := habits.FindByFilter(ctx, adapter.HabitFilter{UserID: user.ID, IsActive: &isActive})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, "07:30", onlyActive[0].ReminderTime)

	everyone, err := habits.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Len(t, everyone, 1)

	taken, err := habits.ExistsByNameAndUser(ctx, "Read", user.ID, nil)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = habits.ExistsByNameAndUser(ctx, "Read", user.ID, &read.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	first := entity.NewHabitLog(read.ID, day(2026, 5, 1), "")
	require.NoError(t, logs.Create(ctx, first))
	require.NoError(t, logs.Create(ctx, entity.NewHabitLog(read.ID, day(2026, 5, 2), "tired")))

	err = logs.Create(ctx, entity.NewHabitLog(read.ID, day(2026, 5, 1), ""))
	assert.ErrorIs(t, err, domainerror.ErrAlreadyCheckedIn)

	found, err := logs.FindByHabitAndDate(ctx, read.ID, day(2026, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	_, err = logs.FindByHabitAndDate(ctx, read.ID, day(2026, 5, 3))
	assert.ErrorIs(t, err, domainerror.ErrHabitLogNotFound)

	history, err := logs.FindByHabit(ctx, read.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, day(2026, 5, 2), history[0].DateCompleted)
	assert.Equal(t, "tired", history[0].Notes)

	since, err := logs.FindByHabitsSince(ctx, []uuid.UUID{read.ID, gym.ID}, day(2026, 5, 2))
	require.NoError(t, err)
	assert.Len(t, since, 1)
	none, err := logs.FindByHabitsSince(ctx, nil, day(2026, 5, 2))
	require.NoError(t, err)
	assert.Empty(t, none)

	read.CurrentStreak, read.LongestStreak = 2, 2
	require.NoError(t, habits.Update(ctx, read))
	reloaded, err := habits.FindByID(ctx, read.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.LongestStreak)

	require.NoError(t, logs.Delete(ctx, first.ID))
	_, err = logs.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domainerror.ErrHabitLogNotFound)

	require.NoError(t, logs.DeleteByHabit(ctx, read.ID))
	require.NoError(t, habits.Delete(ctx, read.ID))
	_, err = habits.FindByID(ctx, read.ID)
	assert.ErrorIs(t, err, domainerror.ErrHabitNotFound)
}

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewEmailQueueRepository(gdb)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	job := entity.NewEmailJob(uuid.New(), entity.TemplateStreakMilestone, "maria@example.com", "maria", "7 days!", map[string]interface{}{
		"habit_name": "Read",
		"streak":     7,
	})
	job.ScheduledAt = now.Add(-time.Minute)
	require.NoError(t, repo.Enqueue(ctx, job))

	later := entity.NewEmailJob(uuid.New(), entity.TemplateGoalCompleted, "joao@example.com", "joao", "Done", nil)
	later.ScheduledAt = now.Add(time.Hour)
	require.NoError(t, repo.Enqueue(ctx, later))

	due, err := repo.Due(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, job.ID, due[0].ID)
	assert.Equal(t, job.UserID, due[0].UserID)
	assert.Equal(t, "Read", due[0].TemplateData["habit_name"])

	due, err = repo.Due(ctx, now.Add(2*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, due, 1, "limit applies")
	assert.Equal(t, job.ID, due[0].ID, "oldest first")

	sentAt := now.AddDate(0, 0, -40)
	due[0].MarkSent("re_123")
	due[0].ProcessedAt = &sentAt
	require.NoError(t, repo.Save(ctx, due[0]))

	due, err = repo.Due(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	deleted, err := repo.PurgeSent(ctx, now.AddDate(0, 0, -50))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted, "sent inside the window")

	deleted, err = repo.PurgeSent(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewTokenRepository(gdb)
	userID := uuid.New()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, "jti-a", userID, now.Add(time.Hour)))
	require.NoError(t, repo.Save(ctx, "jti-b", userID, now.Add(-time.Hour)))

	tests := []struct {
		name    string
		tokenID string
		want    RefreshTokenState
	}{
		{name: "active", tokenID: "jti-a", want: RefreshTokenActive},
		{name: "expired", tokenID: "jti-b", want: RefreshTokenUnknown},
		{name: "never issued", tokenID: "jti-x", want: RefreshTokenUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := repo.State(ctx, tt.tokenID, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}

	require.NoError(t, repo.Revoke(ctx, "jti-a", now))
	state, err := repo.State(ctx, "jti-a", now)
	require.NoError(t, err)
	assert.Equal(t, RefreshTokenRevoked, state)

	// A second revoke keeps the first timestamp.
	require.NoError(t, repo.Revoke(ctx, "jti-a", now.Add(time.Minute)))
	var row model.RefreshTokenModel
	require.NoError(t, gdb.Where("token_id = ?", "jti-a").First(&row).Error)
	require.NotNil(t, row.RevokedAt)
	assert.WithinDuration(t, now, *row.RevokedAt, time.Second)

	require.NoError(t, repo.Revoke(ctx, "jti-x", now), "unknown tokens are ignored")
}
