package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type mockResponse struct {
	status int
	body   any
}

// ApiMock is a programmable HTTP server standing in for third-party APIs.
// Responses are keyed by method and path, either per call index or as a default.
type ApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived map[string][]map[string]any
	headersReceived  map[string][]map[string]string
	responses        map[string]map[int]mockResponse
	defaultResponses map[string]mockResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		headersReceived:  map[string][]map[string]string{},
		responses:        map[string]map[int]mockResponse{},
		defaultResponses: map[string]mockResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
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

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}

	a.mu.Lock()
	index := len(a.requestsReceived[key])
	a.requestsReceived[key] = append(a.requestsReceived[key], request)
	a.headersReceived[key] = append(a.headersReceived[key], headers)
	resp := a.responseFor(key, index)
	a.mu.Unlock()

	payload, _ := json.Marshal(resp.body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(payload)
}

// SetResponse programs the reply to the index-th call of method and path.
// An index of -1 sets the reply used when no indexed one matches.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	resp := mockResponse{status: status, body: response}
	if index == -1 {
		a.defaultResponses[key] = resp
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]mockResponse{}
	}
	a.responses[key][index] = resp
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

// RequestCount returns how many calls method and path received.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

// Reset forgets recorded calls and programmed responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]map[string]string{}
	a.responses = map[string]map[int]mockResponse{}
	a.defaultResponses = map[string]mockResponse{}
}

func (a *ApiMock) responseFor(key string, index int) mockResponse {
	if resp, ok := a.responses[key][index]; ok && resp.status != 0 {
		return resp
	}
	if resp, ok := a.defaultResponses[key]; ok && resp.status != 0 {
		return resp
	}
	// 200 with an empty object keeps WriteHeader(0) from panicking
	return mockResponse{status: http.StatusOK, body: map[string]any{}}
}
