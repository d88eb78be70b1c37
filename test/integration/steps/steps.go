//go:build integration

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
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/domain/valueobject"
)

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return errors.New("test server is not running")
	}
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// todayIs pins the server clock to noon UTC of the given date.
func (t *testContext) todayIs(date string) error {
	day, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

// iAmLoggedInAs registers username with the shared test password and keeps
// the issued tokens for the following requests.
func (t *testContext) iAmLoggedInAs(username string) error {
	t.accessToken = ""
	payload := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q}`, username, username+"@example.com", testPassword)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to register %s: %d %s", username, t.response.status, string(t.response.raw))
	}

	access, _ := getFieldValue(t.response.body, "access_token").(string)
	refresh, _ := getFieldValue(t.response.body, "refresh_token").(string)
	userID, _ := getFieldValue(t.response.body, "user.id").(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("register response has no tokens: %s", string(t.response.raw))
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("register response has no user id: %w", err)
	}

	t.accessToken = access
	t.refreshToken = refresh
	t.currentUserID = id
	t.stored["user_id"] = id.String()
	t.response = nil
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// iStoreTheResponseFieldAs saves a response value for later {{name}} placeholders.
func (t *testContext) iStoreTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	t.stored[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	for name, value := range t.stored {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

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
		status: resp.StatusCode,
		raw:    bodyBytes,
	}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err == nil {
		t.response.body = decoded
	}

	return nil
}

func (t *testContext) thePendingEmailsAreDelivered(ctx context.Context) error {
	t.injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func (t *testContext) habitStreaksAreRecomputed(ctx context.Context) error {
	_, err := t.injector.RecomputeStreaks.Execute(ctx)
	return err
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.body == nil {
		return fmt.Errorf("response is not JSON: %s", string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", string(t.response.raw))
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseTextShouldContain(text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), text) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", text, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	switch v := getFieldValue(t.response.body, field).(type) {
	case []any:
		if len(v) != quantity {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(v))
		}
	case map[string]any:
		if len(v) != quantity {
			return fmt.Errorf("field '%s' expected %d keys, got %d", field, quantity, len(v))
		}
	case nil:
		if quantity != 0 {
			return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
		}
	default:
		return fmt.Errorf("field '%s' is not a list: %v", field, v)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entitySlicePtr := newModelSlice(entity)
	if err := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entitySlicePtr := newModelSlice(entity)
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

func (t *testContext) emailsShouldHaveBeenSent(quantity int) error {
	count := t.emailAPI.RequestCount(http.MethodPost, resendEmailPath)
	if count != quantity {
		return fmt.Errorf("expected %d emails sent, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) anEmailShouldHaveBeenSentTo(address string) error {
	count := t.emailAPI.RequestCount(http.MethodPost, resendEmailPath)
	for i := 0; i < count; i++ {
		request := t.emailAPI.GetRequestBody(http.MethodPost, resendEmailPath, i)
		recipients, _ := request["to"].([]any)
		for _, r := range recipients {
			if s, ok := r.(string); ok && strings.Contains(s, address) {
				return nil
			}
		}
	}
	return fmt.Errorf("no email was sent to %s (%d sent)", address, count)
}

func newModelSlice(entity any) reflect.Value {
	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)
	return entitySlicePtr
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

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
