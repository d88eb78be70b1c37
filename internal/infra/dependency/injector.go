// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/self-focus/backend/config"
	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/usecase/auth"
	"github.com/self-focus/backend/internal/application/usecase/category"
	"github.com/self-focus/backend/internal/application/usecase/dashboard"
	"github.com/self-focus/backend/internal/application/usecase/goal"
	"github.com/self-focus/backend/internal/application/usecase/habit"
	"github.com/self-focus/backend/internal/application/usecase/transaction"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/infra/lock"
	"github.com/self-focus/backend/internal/infra/server/router"
	"github.com/self-focus/backend/internal/integration/adapters"
	"github.com/self-focus/backend/internal/integration/email"
	"github.com/self-focus/backend/internal/integration/email/templates"
	"github.com/self-focus/backend/internal/integration/entrypoint/controller"
	"github.com/self-focus/backend/internal/integration/entrypoint/middleware"
	"github.com/self-focus/backend/internal/integration/persistence"
)

// Options carries the optional collaborators of the injector.
type Options struct {
	// Redis backs the entity locks and the login rate limiter. Nil selects the
	// in-process implementations.
	Redis *redis.Client
	// Clock defaults to the wall clock.
	Clock adapter.Clock
	// EmailSender defaults to Resend when an API key is configured and to the
	// logging mock otherwise.
	EmailSender adapter.EmailSender
	// PasswordService defaults to bcrypt at the production cost.
	PasswordService adapter.PasswordService
	// DBHealthCheck is reported by /health.
	DBHealthCheck controller.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Locker      adapter.EntityLocker
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter

	// Maintenance use cases driven by the CLI.
	RecomputeStreaks   *habit.RecomputeStreaksUseCase
	ExportTransactions *transaction.ExportTransactionsUseCase
	Users              adapter.UserRepository
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	milestoneRepo := persistence.NewMilestoneRepository(db)
	habitRepo := persistence.NewHabitRepository(db)
	habitLogRepo := persistence.NewHabitLogRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Locks and rate limiting
	var (
		locker      adapter.EntityLocker
		rateLimiter *middleware.RateLimiter
	)
	if opts.Redis != nil {
		locker = lock.NewRedisLocker(opts.Redis, cfg.Lock)
		rateLimiter = middleware.NewRedisRateLimiter(opts.Redis, cfg.RateLimit)
	} else {
		locker = lock.NewLocalLocker()
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit)
	}

	// Adapters/services
	passwordService := opts.PasswordService
	if passwordService == nil {
		passwordService = adapters.NewPasswordService()
	}
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)

	// Email
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	sender := opts.EmailSender
	if sender == nil {
		var err error
		if sender, err = newEmailSender(cfg.Email); err != nil {
			return nil, err
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:  cfg.Email.PollInterval,
		BatchSize:     cfg.Email.BatchSize,
		RetentionDays: cfg.Email.RetentionDays,
	})

	habitConfig := habit.Config{
		Admission:            service.AdmissionPolicy{MaxActive: cfg.Habits.MaxActive},
		CompletionWindowDays: cfg.Habits.CompletionWindowDays,
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, clock)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, transactionRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, locker, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, locker, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, locker)
	summaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo, clock)
	monthlySummaryUseCase := transaction.NewGetMonthlySummaryUseCase(transactionRepo, categoryRepo, clock)
	exportUseCase := transaction.NewExportTransactionsUseCase(transactionRepo)

	// Goal use cases
	milestoneDeps := goal.MilestoneDeps{
		GoalRepo:      goalRepo,
		MilestoneRepo: milestoneRepo,
		UserRepo:      userRepo,
		EmailService:  emailService,
		Locker:        locker,
		Clock:         clock,
	}
	goalUseCases := controller.GoalUseCases{
		List:              goal.NewListGoalsUseCase(goalRepo, clock),
		Create:            goal.NewCreateGoalUseCase(goalRepo),
		Get:               goal.NewGetGoalUseCase(goalRepo, milestoneRepo, clock),
		Update:            goal.NewUpdateGoalUseCase(goalRepo, locker, clock),
		UpdateStatus:      goal.NewUpdateGoalStatusUseCase(goalRepo, locker, clock),
		Delete:            goal.NewDeleteGoalUseCase(goalRepo, milestoneRepo, locker),
		CreateMilestone:   goal.NewCreateMilestoneUseCase(milestoneDeps),
		CompleteMilestone: goal.NewSetMilestoneCompletionUseCase(milestoneDeps),
		DeleteMilestone:   goal.NewDeleteMilestoneUseCase(milestoneDeps),
	}

	// Habit use cases
	checkInDeps := habit.CheckInDeps{
		HabitRepo:    habitRepo,
		LogRepo:      habitLogRepo,
		UserRepo:     userRepo,
		EmailService: emailService,
		Locker:       locker,
		Clock:        clock,
	}
	habitUseCases := controller.HabitUseCases{
		List:          habit.NewListHabitsUseCase(habitRepo, habitLogRepo, clock, habitConfig),
		Create:        habit.NewCreateHabitUseCase(habitRepo, locker, habitConfig),
		Get:           habit.NewGetHabitUseCase(habitRepo, habitLogRepo, clock, habitConfig),
		Update:        habit.NewUpdateHabitUseCase(habitRepo, habitLogRepo, locker, clock),
		Toggle:        habit.NewToggleHabitUseCase(habitRepo, locker, clock, habitConfig),
		Delete:        habit.NewDeleteHabitUseCase(habitRepo, habitLogRepo, locker),
		CheckIn:       habit.NewCheckInUseCase(checkInDeps),
		RemoveCheckIn: habit.NewRemoveCheckInUseCase(checkInDeps),
		Calendar:      habit.NewCalendarUseCase(habitRepo, habitLogRepo, clock),
	}
	recomputeStreaksUseCase := habit.NewRecomputeStreaksUseCase(habitRepo, habitLogRepo, locker, clock)

	// Dashboard use cases
	overviewUseCase := dashboard.NewGetOverviewUseCase(goalRepo, transactionRepo, habitRepo, habitLogRepo, clock)
	statsUseCase := dashboard.NewGetStatsUseCase(goalRepo, transactionRepo, categoryRepo, clock)
	trendsUseCase := dashboard.NewGetTrendsUseCase(transactionRepo)

	// Controllers
	var redisHealthCheck controller.HealthChecker
	if opts.Redis != nil {
		redisHealthCheck = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return opts.Redis.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(opts.DBHealthCheck, redisHealthCheck, clock)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	userController := controller.NewUserController(getCurrentUserUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		deleteCategoryUseCase,
	)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		summaryUseCase,
		monthlySummaryUseCase,
		exportUseCase,
	)
	goalController := controller.NewGoalController(goalUseCases)
	habitController := controller.NewHabitController(habitUseCases)
	dashboardController := controller.NewDashboardController(overviewUseCase, statsUseCase, trendsUseCase)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		transactionController,
		goalController,
		habitController,
		dashboardController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:             cfg,
		DB:                 db,
		Router:             r,
		Locker:             locker,
		EmailWorker:        emailWorker,
		RateLimiter:        rateLimiter,
		RecomputeStreaks:   recomputeStreaksUseCase,
		ExportTransactions: exportUseCase,
		Users:              userRepo,
	}, nil
}

func newEmailSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		return email.NewMockEmailSender(), nil
	}
	client, err := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}
