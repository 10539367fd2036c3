package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/integration/persistence"
)

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Background steps
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, t.todayIs)

	// Data setup steps
	ctx.Given(`^the following transactions exist:$`, t.theFollowingTransactionsExist)
	ctx.Given(`^a budget of "([^"]*)" exists for category "([^"]*)"$`, t.aBudgetExistsForCategory)

	// Third-party steps
	ctx.Given(`^the email provider responds with status (\d+)$`, t.theEmailProviderRespondsWithStatus)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, t.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, t.theResponseHeaderShouldBe)
}

func registerStorageSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)

	// Cache assertion steps
	ctx.Then(`^the analytics cache version should be (\d+)$`, t.theAnalyticsCacheVersionShouldBe)
	ctx.Then(`^the analytics cache should hold (\d+) "([^"]*)" entr(?:y|ies)$`, t.theAnalyticsCacheShouldHoldEntries)

	// Email assertion steps
	ctx.Then(`^(\d+) emails? should have been sent$`, t.emailsShouldHaveBeenSent)
	ctx.Then(`^the sent email field "([^"]*)" should contain "([^"]*)"$`, t.theSentEmailFieldShouldContain)
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	// Noon keeps the calendar day stable while the mock clock ticks.
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

// theFollowingTransactionsExist stores transactions straight through the repository.
// Columns: id, date, amount, category, account_id, merchant_name, description, pending.
func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transaction table needs a header and at least one row")
	}

	header := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}
	value := func(row []string, column string) string {
		if i, ok := header[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	transactions := make([]*entity.Transaction, 0, len(table.Rows)-1)
	for n, row := range table.Rows[1:] {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Value
		}

		date, err := time.Parse("2006-01-02", value(cells, "date"))
		if err != nil {
			return fmt.Errorf("row %d: %w", n+1, err)
		}
		amount, err := decimal.NewFromString(value(cells, "amount"))
		if err != nil {
			return fmt.Errorf("row %d: %w", n+1, err)
		}

		id := value(cells, "id")
		if id == "" {
			id = fmt.Sprintf("txn-%d", n+1)
		}
		category := value(cells, "category")
		if category == "" {
			category = entity.UncategorizedCategory
		}
		account := value(cells, "account_id")
		if account == "" {
			account = "checking"
		}

		transactions = append(transactions, &entity.Transaction{
			ID:           id,
			Date:         date,
			Amount:       amount,
			Category:     category,
			CategoryPath: []string{category},
			AccountID:    account,
			MerchantName: value(cells, "merchant_name"),
			Description:  value(cells, "description"),
			Pending:      value(cells, "pending") == "true",
		})
	}

	repo := persistence.NewTransactionRepository(t.db.DbConn)
	_, err := repo.UpsertMany(context.Background(), transactions)
	return err
}

func (t *testContext) aBudgetExistsForCategory(amount, category string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	repo := persistence.NewBudgetRepository(t.db.DbConn)
	return repo.Upsert(context.Background(), entity.NewBudget(category, value, entity.BudgetPeriodMonthly))
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	body := map[string]any{"id": "email-123"}
	if status >= http.StatusBadRequest {
		body = map[string]any{
			"statusCode": status,
			"name":       "application_error",
			"message":    "provider unavailable",
		}
	}
	t.api.SetResponse(-1, http.MethodPost, resendEmailsPath, status, body)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(body.Content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if model, ok := t.db.GetModel(table); ok {
		entitySlicePtr := newModelSlice(model)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	if model, ok := t.db.GetModel(table); ok {
		entitySlicePtr := newModelSlice(model)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theAnalyticsCacheVersionShouldBe(expected int) error {
	raw, err := t.redis.Server.Get("analytics:version")
	if err != nil {
		raw = "0"
	}
	if raw != strconv.Itoa(expected) {
		return fmt.Errorf("expected analytics cache version %d, got %s", expected, raw)
	}
	return nil
}

func (t *testContext) theAnalyticsCacheShouldHoldEntries(count int, name string) error {
	prefix := "analytics:" + name + ":"
	found := 0
	for _, key := range t.redis.Keys() {
		if strings.HasPrefix(key, prefix) {
			found++
		}
	}
	if found != count {
		return fmt.Errorf("expected %d cached %s entries, got %d (keys: %v)", count, name, found, t.redis.Keys())
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	sent := t.api.RequestCount(http.MethodPost, resendEmailsPath)
	if sent != count {
		return fmt.Errorf("expected %d email requests, got %d", count, sent)
	}
	return nil
}

func (t *testContext) theSentEmailFieldShouldContain(field, expected string) error {
	sent := t.api.RequestCount(http.MethodPost, resendEmailsPath)
	if sent == 0 {
		return errors.New("no email was sent")
	}

	body := t.api.GetRequestBody(http.MethodPost, resendEmailsPath, sent-1)
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in email request: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); !strings.Contains(actual, expected) {
		return fmt.Errorf("email field '%s' expected to contain '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func newModelSlice(model any) reflect.Value {
	entityType := reflect.TypeOf(model).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)
	return entitySlicePtr
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
