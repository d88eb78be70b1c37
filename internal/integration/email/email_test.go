package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/adapter/fake"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/integration/email/templates"
)

type emailFixture struct {
	store   *fake.Store
	service *Service
	sender  *MockEmailSender
	worker  *Worker
}

func newEmailFixture(t *testing.T) *emailFixture {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	store := fake.NewStore()
	sender := NewMockEmailSender()
	return &emailFixture{
		store:   store,
		service: NewService(store.EmailQueue(), "https://app.selffocus.test"),
		sender:  sender,
		worker:  NewWorker(store.EmailQueue(), sender, renderer, DefaultWorkerConfig()),
	}
}

func TestService_QueuesJobs(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture(t)
	userID := uuid.New()

	require.NoError(t, f.service.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
		UserID: userID, UserEmail: "maria@example.com", UserName: "maria", GoalTitle: "Run a marathon",
	}))
	require.NoError(t, f.service.QueueStreakMilestoneEmail(ctx, adapter.QueueStreakMilestoneInput{
		UserID: userID, UserEmail: "maria@example.com", UserName: "maria", HabitName: "Read", Streak: 30,
	}))

	jobs := f.store.EmailJobs()
	require.Len(t, jobs, 2)
	byType := map[entity.EmailTemplateType]*entity.EmailJob{}
	for _, j := range jobs {
		byType[j.TemplateType] = j
		assert.Equal(t, userID, j.UserID)
		assert.Equal(t, entity.EmailStatusPending, j.Status)
	}
	assert.Equal(t, "Goal completed: Run a marathon", byType[entity.TemplateGoalCompleted].Subject)
	assert.Equal(t, "30-day streak on Read", byType[entity.TemplateStreakMilestone].Subject)
	assert.Equal(t, "https://app.selffocus.test/habits", byType[entity.TemplateStreakMilestone].TemplateData["habits_url"])
}

func TestWorker_SendsRenderedEmails(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture(t)

	require.NoError(t, f.service.QueueStreakMilestoneEmail(ctx, adapter.QueueStreakMilestoneInput{
		UserID: uuid.New(), UserEmail: "maria@example.com", UserName: "maria", HabitName: "Read", Streak: 7,
	}))

	f.worker.ProcessNow(ctx)

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "maria@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "<strong>Read</strong>")
	assert.Contains(t, sent[0].HTML, "7 in a row!")
	assert.Contains(t, sent[0].Text, `You have kept "Read" going for 7 check-ins in a row.`)

	jobs := f.store.EmailJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.EmailStatusSent, jobs[0].Status)
	assert.Equal(t, "mock-1", jobs[0].ProviderID)
}

func TestWorker_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("temporary failure is retried later", func(t *testing.T) {
		f := newEmailFixture(t)
		require.NoError(t, f.service.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
			UserID: uuid.New(), UserEmail: "a@b.co", UserName: "a", GoalTitle: "G",
		}))
		f.sender.SetFailure(errors.New("503 service unavailable"), false)

		f.worker.ProcessNow(ctx)

		job := f.store.EmailJobs()[0]
		assert.Equal(t, entity.EmailStatusPending, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.Contains(t, job.LastError, "503")
	})

	t.Run("permanent failure closes the job", func(t *testing.T) {
		f := newEmailFixture(t)
		require.NoError(t, f.service.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
			UserID: uuid.New(), UserEmail: "a@b.co", UserName: "a", GoalTitle: "G",
		}))
		f.sender.SetFailure(errors.New("422 validation error"), true)

		f.worker.ProcessNow(ctx)

		job := f.store.EmailJobs()[0]
		assert.Equal(t, entity.EmailStatusFailed, job.Status)
		assert.NotNil(t, job.ProcessedAt)
	})

	t.Run("unknown template is permanent", func(t *testing.T) {
		f := newEmailFixture(t)
		job := entity.NewEmailJob(uuid.New(), entity.EmailTemplateType("newsletter"), "a@b.co", "a", "Hi", nil)
		require.NoError(t, f.store.EmailQueue().Enqueue(ctx, job))

		f.worker.ProcessNow(ctx)

		assert.Equal(t, entity.EmailStatusFailed, f.store.EmailJobs()[0].Status)
		assert.Empty(t, f.sender.Sent())
	})
}

func TestWorker_CleanupUsesClock(t *testing.T) {
	ctx := context.Background()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	store := fake.NewStore()
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	w := NewWorker(store.EmailQueue(), NewMockEmailSender(), renderer, WorkerConfig{
		PollInterval:  time.Second,
		BatchSize:     10,
		RetentionDays: 30,
		Clock:         fake.NewClock(now),
	})

	sentAt := func(at time.Time) *entity.EmailJob {
		job := entity.NewEmailJob(uuid.New(), entity.TemplateGoalCompleted, "a@b.co", "a", "G", nil)
		job.MarkSent("re_1")
		job.ProcessedAt = &at
		require.NoError(t, store.EmailQueue().Enqueue(ctx, job))
		return job
	}
	old := sentAt(now.AddDate(0, 0, -31))
	recent := sentAt(now.AddDate(0, 0, -29))

	w.cleanup(ctx)

	jobs := store.EmailJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, recent.ID, jobs[0].ID)
	assert.NotEqual(t, old.ID, jobs[0].ID)
}

func TestIsPermanentError(t *testing.T) {
	assert.True(t, isPermanentError(errors.New("401 Unauthorized")))
	assert.True(t, isPermanentError(errors.New("invalid `to` field")))
	assert.False(t, isPermanentError(errors.New("429 rate limit exceeded")))
	assert.False(t, isPermanentError(nil))
}

func TestResendClient(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", "Self Focus", "noreply@example.com", server.URL)
	require.NoError(t, err)

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ana@example.com",
		Name:    "ana",
		Subject: "Milestone reached",
		HTML:    "<p>done</p>",
		Text:    "done",
	})
	require.NoError(t, err)
	assert.Equal(t, "email-123", result.ProviderID)
	assert.Equal(t, "Self Focus <noreply@example.com>", received["from"])
	assert.Equal(t, "Milestone reached", received["subject"])
}

func TestGetInt(t *testing.T) {
	data := map[string]interface{}{"a": 7, "b": float64(30), "c": "x"}
	assert.Equal(t, 7, getInt(data, "a"))
	assert.Equal(t, 30, getInt(data, "b"))
	assert.Equal(t, 0, getInt(data, "c"))
	assert.Equal(t, 0, getInt(data, "missing"))
}
