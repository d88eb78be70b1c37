// Package fake provides in-memory implementations of the application adapters
// for use-case tests.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// Store is a shared in-memory database behind every fake repository.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]entity.User
	categories   map[uuid.UUID]entity.Category
	transactions map[uuid.UUID]entity.Transaction
	goals        map[uuid.UUID]entity.Goal
	milestones   map[uuid.UUID]entity.Milestone
	habits       map[uuid.UUID]entity.Habit
	habitLogs    map[uuid.UUID]entity.HabitLog
	emailJobs    map[uuid.UUID]entity.EmailJob
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]entity.User),
		categories:   make(map[uuid.UUID]entity.Category),
		transactions: make(map[uuid.UUID]entity.Transaction),
		goals:        make(map[uuid.UUID]entity.Goal),
		milestones:   make(map[uuid.UUID]entity.Milestone),
		habits:       make(map[uuid.UUID]entity.Habit),
		habitLogs:    make(map[uuid.UUID]entity.HabitLog),
		emailJobs:    make(map[uuid.UUID]entity.EmailJob),
	}
}

// Users returns a UserRepository over the store.
func (s *Store) Users() adapter.UserRepository { return &userRepo{s} }

// Categories returns a CategoryRepository over the store.
func (s *Store) Categories() adapter.CategoryRepository { return &categoryRepo{s} }

// Transactions returns a TransactionRepository over the store.
func (s *Store) Transactions() adapter.TransactionRepository { return &transactionRepo{s} }

// Goals returns a GoalRepository over the store.
func (s *Store) Goals() adapter.GoalRepository { return &goalRepo{s} }

// Milestones returns a MilestoneRepository over the store.
func (s *Store) Milestones() adapter.MilestoneRepository { return &milestoneRepo{s} }

// Habits returns a HabitRepository over the store.
func (s *Store) Habits() adapter.HabitRepository { return &habitRepo{s} }

// HabitLogs returns a HabitLogRepository over the store.
func (s *Store) HabitLogs() adapter.HabitLogRepository { return &habitLogRepo{s} }

// EmailQueue returns an EmailQueueRepository over the store.
func (s *Store) EmailQueue() adapter.EmailQueueRepository { return &emailQueueRepo{s} }

// EmailJobs returns a snapshot of every queued job.
func (s *Store) EmailJobs() []*entity.EmailJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.EmailJob, 0, len(s.emailJobs))
	for _, j := range s.emailJobs {
		j := j
		out = append(out, &j)
	}
	return out
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *userRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.FindByEmail(ctx, email)
	return u != nil, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.FindByUsername(ctx, username)
	return u != nil, nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) CreateBatch(ctx context.Context, cs []*entity.Category) error {
	for _, c := range cs {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *categoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range r.s.categories {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *categoryRepo) CountTransactions(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.transactions {
		if t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *categoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *transactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return &t, nil
}

func (r *transactionRepo) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.withCategory(t), nil
}

func (r *transactionRepo) withCategory(t *entity.Transaction) *entity.TransactionWithCategory {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := &entity.TransactionWithCategory{Transaction: t}
	if c, ok := r.s.categories[t.CategoryID]; ok {
		out.Category = &c
	}
	return out
}

func (r *transactionRepo) sorted(match func(entity.Transaction) bool) []*entity.Transaction {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Transaction{}
	for _, t := range r.s.transactions {
		if match(t) {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func inBounds(date time.Time, start, end *time.Time) bool {
	d := valueobject.Date(date)
	if start != nil && d.Before(valueobject.Date(*start)) {
		return false
	}
	if end != nil && d.After(valueobject.Date(*end)) {
		return false
	}
	return true
}

func (r *transactionRepo) FindByUser(_ context.Context, userID uuid.UUID, start, end *time.Time) ([]*entity.Transaction, error) {
	return r.sorted(func(t entity.Transaction) bool {
		return t.UserID == userID && inBounds(t.Date, start, end)
	}), nil
}

func (r *transactionRepo) FindByFilter(_ context.Context, f adapter.TransactionFilter, p adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	all := r.sorted(func(t entity.Transaction) bool {
		if t.UserID != f.UserID || !inBounds(t.Date, f.StartDate, f.EndDate) {
			return false
		}
		if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
			return false
		}
		return f.Type == nil || t.Type == *f.Type
	})

	total := len(all)
	startIdx := (p.Page - 1) * p.Limit
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + p.Limit
	if endIdx > total {
		endIdx = total
	}

	rows := make([]*entity.TransactionWithCategory, 0, endIdx-startIdx)
	for _, t := range all[startIdx:endIdx] {
		rows = append(rows, r.withCategory(t))
	}

	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return &adapter.TransactionListResult{
		Transactions: rows,
		Total:        int64(total),
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (r *transactionRepo) FindAllWithCategory(_ context.Context, userID uuid.UUID) ([]*entity.TransactionWithCategory, error) {
	all := r.sorted(func(t entity.Transaction) bool { return t.UserID == userID })
	out := make([]*entity.TransactionWithCategory, 0, len(all))
	for _, t := range all {
		out = append(out, r.withCategory(t))
	}
	return out, nil
}

func (r *transactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.transactions, id)
	return nil
}

type goalRepo struct{ s *Store }

func (r *goalRepo) Create(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[g.ID] = *g
	return nil
}

func (r *goalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return &g, nil
}

func (r *goalRepo) FindByUser(_ context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Goal{}
	for _, g := range r.s.goals {
		if g.UserID == userID && (status == nil || g.Status == *status) {
			g := g
			out = append(out, &g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *goalRepo) Update(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[g.ID] = *g
	return nil
}

func (r *goalRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.goals, id)
	return nil
}

type milestoneRepo struct{ s *Store }

func (r *milestoneRepo) Create(_ context.Context, m *entity.Milestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.milestones[m.ID] = *m
	return nil
}

func (r *milestoneRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Milestone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.milestones[id]
	if !ok {
		return nil, domainerror.ErrMilestoneNotFound
	}
	return &m, nil
}

func (r *milestoneRepo) FindByGoal(_ context.Context, goalID uuid.UUID) ([]*entity.Milestone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Milestone{}
	for _, m := range r.s.milestones {
		if m.GoalID == goalID {
			m := m
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TargetDate, out[j].TargetDate
		switch {
		case a == nil && b == nil:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	return out, nil
}

func (r *milestoneRepo) Update(_ context.Context, m *entity.Milestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.milestones[m.ID] = *m
	return nil
}

func (r *milestoneRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.milestones, id)
	return nil
}

func (r *milestoneRepo) DeleteByGoal(_ context.Context, goalID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.milestones {
		if m.GoalID == goalID {
			delete(r.s.milestones, id)
		}
	}
	return nil
}

type habitRepo struct{ s *Store }

func (r *habitRepo) Create(_ context.Context, h *entity.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.habits[h.ID] = *h
	return nil
}

func (r *habitRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Habit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.habits[id]
	if !ok {
		return nil, domainerror.ErrHabitNotFound
	}
	return &h, nil
}

func (r *habitRepo) list(match func(entity.Habit) bool) []*entity.Habit {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Habit{}
	for _, h := range r.s.habits {
		if match(h) {
			h := h
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *habitRepo) FindByFilter(_ context.Context, f adapter.HabitFilter) ([]*entity.Habit, error) {
	return r.list(func(h entity.Habit) bool {
		return h.UserID == f.UserID && (f.IsActive == nil || h.IsActive == *f.IsActive)
	}), nil
}

func (r *habitRepo) FindAllActive(_ context.Context) ([]*entity.Habit, error) {
	return r.list(func(h entity.Habit) bool { return h.IsActive }), nil
}

func (r *habitRepo) CountActive(_ context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(r.list(func(h entity.Habit) bool { return h.UserID == userID && h.IsActive }))), nil
}

func (r *habitRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	matches := r.list(func(h entity.Habit) bool {
		if excludeID != nil && h.ID == *excludeID {
			return false
		}
		return h.UserID == userID && h.Name == name
	})
	return len(matches) > 0, nil
}

func (r *habitRepo) Update(_ context.Context, h *entity.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.habits[h.ID] = *h
	return nil
}

func (r *habitRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.habits, id)
	return nil
}

type habitLogRepo struct{ s *Store }

func (r *habitLogRepo) Create(_ context.Context, l *entity.HabitLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.habitLogs {
		if existing.HabitID == l.HabitID && existing.DateCompleted.Equal(l.DateCompleted) {
			return domainerror.ErrAlreadyCheckedIn
		}
	}
	r.s.habitLogs[l.ID] = *l
	return nil
}

func (r *habitLogRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.HabitLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.habitLogs[id]
	if !ok {
		return nil, domainerror.ErrHabitLogNotFound
	}
	return &l, nil
}

func (r *habitLogRepo) list(match func(entity.HabitLog) bool) []*entity.HabitLog {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.HabitLog{}
	for _, l := range r.s.habitLogs {
		if match(l) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCompleted.After(out[j].DateCompleted) })
	return out
}

func (r *habitLogRepo) FindByHabitAndDate(_ context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error) {
	d := valueobject.Date(date)
	logs := r.list(func(l entity.HabitLog) bool { return l.HabitID == habitID && l.DateCompleted.Equal(d) })
	if len(logs) == 0 {
		return nil, domainerror.ErrHabitLogNotFound
	}
	return logs[0], nil
}

func (r *habitLogRepo) FindByHabit(_ context.Context, habitID uuid.UUID) ([]*entity.HabitLog, error) {
	return r.list(func(l entity.HabitLog) bool { return l.HabitID == habitID }), nil
}

func (r *habitLogRepo) FindByHabitsSince(_ context.Context, habitIDs []uuid.UUID, since time.Time) ([]*entity.HabitLog, error) {
	ids := make(map[uuid.UUID]bool, len(habitIDs))
	for _, id := range habitIDs {
		ids[id] = true
	}
	from := valueobject.Date(since)
	return r.list(func(l entity.HabitLog) bool {
		return ids[l.HabitID] && !l.DateCompleted.Before(from)
	}), nil
}

func (r *habitLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.habitLogs, id)
	return nil
}

func (r *habitLogRepo) DeleteByHabit(_ context.Context, habitID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.habitLogs {
		if l.HabitID == habitID {
			delete(r.s.habitLogs, id)
		}
	}
	return nil
}

type emailQueueRepo struct{ s *Store }

func (r *emailQueueRepo) Enqueue(_ context.Context, j *entity.EmailJob) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.emailJobs[j.ID] = *j
	return nil
}

func (r *emailQueueRepo) Due(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.EmailJob{}
	for _, j := range r.s.emailJobs {
		if j.Status == entity.EmailStatusPending && !j.ScheduledAt.After(now) {
			j := j
			out = append(out, &j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ScheduledAt.Before(out[k].ScheduledAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *emailQueueRepo) Save(_ context.Context, j *entity.EmailJob) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.emailJobs[j.ID] = *j
	return nil
}

func (r *emailQueueRepo) PurgeSent(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, j := range r.s.emailJobs {
		if j.Status == entity.EmailStatusSent && j.ProcessedAt != nil && j.ProcessedAt.Before(cutoff) {
			delete(r.s.emailJobs, id)
			n++
		}
	}
	return n, nil
}
