// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/infra/dependency"
	"github.com/finance-tracker/insights/internal/integration/email"
	"github.com/finance-tracker/insights/internal/integration/persistence/model"
	"github.com/finance-tracker/insights/test/integration/mock"
)

const (
	alertRecipient   = "owner@example.com"
	resendEmailsPath = "/emails"
)

// testContext holds the state shared by the steps of one scenario.
type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *mock.Redis
	api      *mock.ApiMock
	timeMock *mock.Time
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var (
	serverInit sync.Once
	server     *httptest.Server
	apiMock    *mock.ApiMock
)

var timeMock = mock.NewTime()

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	// Each suite starts its own server; database and Redis stay shared.
	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
			server = nil
		}
		if apiMock != nil {
			apiMock.Close()
			apiMock = nil
		}
		serverInit = sync.Once{}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: timeMock,
		db: mock.NewDb(map[string]any{
			"transactions": &model.TransactionModel{},
			"budgets":      &model.BudgetModel{},
		}),
		redis: mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStorageSteps(ctx, test)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.timeMock.Reset()

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := t.redis.Clear(); err != nil {
		return err
	}
	if t.api != nil {
		t.api.Reset()
	}
	return nil
}

// startServer wires the application against the in-memory database,
// miniredis and a mock of the Resend API.
func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		apiMock = mock.NewApiServer()
		apiMock.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Email.Enabled = true
		cfg.Email.AlertRecipient = alertRecipient
		cfg.Email.RecipientName = "Owner"
		cfg.Email.MaxAttempts = 2
		cfg.Email.RetryBackoff = 10 * time.Millisecond
		cfg.Analytics.CacheTTL = time.Minute

		sender, err := email.NewResendClientWithBaseURL("re_test_key", "Finance Insights", "alerts@example.com", apiMock.GetUrl())
		if err != nil {
			startErr = err
			return
		}

		injector, err := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
			Redis:       t.redis.Client,
			EmailSender: sender,
			Clock:       func() time.Time { return timeMock.Now().UTC() },
		})
		if err != nil {
			startErr = err
			return
		}

		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	if startErr != nil {
		return startErr
	}

	t.uri = server.URL
	t.api = apiMock
	return nil
}
