//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/self-focus/backend/config"
	"github.com/self-focus/backend/internal/infra/dependency"
	"github.com/self-focus/backend/internal/integration/adapters"
	"github.com/self-focus/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testPassword    = "Password123"
	resendEmailPath = "/emails"
)

// suite holds the process-wide test dependencies shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	timeMock *mock.Time
	emailAPI *mock.ApiMock
}

var (
	suiteOnce sync.Once
	shared    *suite
)

type testContext struct {
	*suite

	client        *http.Client
	headers       map[string]string
	response      *response
	accessToken   string
	refreshToken  string
	currentUserID uuid.UUID
	stored        map[string]string
}

type response struct {
	status int
	raw    []byte
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		startSuite()
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		if shared.server != nil {
			shared.server.Close()
		}
		shared.emailAPI.Close()
	})
}

func startSuite() {
	suiteOnce.Do(func() {
		_ = os.Setenv("ENV", "test")

		emailAPI := mock.NewApiServer()
		emailAPI.Start()

		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.RateLimit.Enabled = false
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = emailAPI.GetUrl()

		testDb := mock.NewDb()
		timeMock := mock.NewTime()

		injector, err := dependency.NewInjector(cfg, testDb.DbConn, dependency.Options{
			Redis:           mock.NewRedis(),
			Clock:           timeMock,
			PasswordService: adapters.NewPasswordServiceWithCost(bcrypt.MinCost),
			DBHealthCheck:   testDb.Database.HealthCheck,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to build injector: %s", err.Error()))
		}

		shared = &suite{
			server:   httptest.NewServer(injector.Router.Setup("test")),
			injector: injector,
			db:       testDb,
			timeMock: timeMock,
			emailAPI: emailAPI,
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startSuite()

	test := &testContext{
		suite:  shared,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// User setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, test.iStoreTheResponseFieldAs)

	// Background jobs
	ctx.When(`^the pending emails are delivered$`, test.thePendingEmailsAreDelivered)
	ctx.When(`^habit streaks are recomputed$`, test.habitStreaksAreRecomputed)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response text should contain "([^"]*)"$`, test.theResponseTextShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email assertion steps
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^an email should have been sent to "([^"]*)"$`, test.anEmailShouldHaveBeenSentTo)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.stored = make(map[string]string)

	t.timeMock.SetCurrentTime(time.Now())
	t.injector.RateLimiter.Reset()

	t.emailAPI.ClearResponses("POST", resendEmailPath)
	t.emailAPI.SetResponse(-1, "POST", resendEmailPath, http.StatusOK, map[string]any{"id": "mock-email-id"})

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}
