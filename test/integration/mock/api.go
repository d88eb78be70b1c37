package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is a recording HTTP server that stands in for third-party APIs.
// Calls and canned responses are keyed by method and path.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]map[string]any
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]map[string]any{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(raw, &request)

	key := r.Method + r.URL.Path

	a.mu.Lock()
	index := len(a.requests[key])
	a.requests[key] = append(a.requests[key], request)
	resp, ok := a.responses[key][index]
	if !ok {
		resp, ok = a.defaults[key]
	}
	a.mu.Unlock()

	if !ok || resp.status == 0 {
		resp = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}

	payload, _ := json.Marshal(resp.body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(payload)
}

// SetResponse answers the index-th call to method+path. An index of -1 sets
// the answer for every call without its own response.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaults[key] = cannedResponse{status: status, body: response}
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = cannedResponse{status: status, body: response}
}

// ClearResponses forgets recorded calls and canned responses of method+path.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	delete(a.requests, key)
	delete(a.responses, key)
	delete(a.defaults, key)
}

// RequestCount returns how many requests reached method+path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests[method+path])
}

// GetRequestBody returns the decoded JSON body of the index-th call, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	calls := a.requests[method+path]
	if index < 0 || index >= len(calls) {
		return nil
	}
	return calls[index]
}
