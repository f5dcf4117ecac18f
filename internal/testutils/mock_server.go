package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultRates are the conversion_rates served when no custom response is set
var DefaultRates = map[string]float64{
	"USD": 1.0,
	"ARS": 900.0,
	"BOB": 6.91,
	"BRL": 5.0,
	"CLP": 943.27,
	"COP": 3912.5,
	"EUR": 0.92,
}

// RecordedRequest is what the mock provider saw for a single call
type RecordedRequest struct {
	APIKey string
	Base   string
	Accept string
}

// MockProviderServer emulates an ExchangeRate-API v6 endpoint:
// GET /v6/{api_key}/latest/{BASE}
type MockProviderServer struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	delay    time.Duration
	requests []RecordedRequest
}

// NewMockProviderServer starts a mock provider answering with DefaultRates
func NewMockProviderServer() *MockProviderServer {
	gin.SetMode(gin.TestMode)

	mock := &MockProviderServer{}
	router := gin.New()
	router.GET("/v6/:apiKey/latest/:base", mock.handleLatest)
	mock.server = httptest.NewServer(router)
	return mock
}

func (m *MockProviderServer) handleLatest(c *gin.Context) {
	m.mu.Lock()
	m.requests = append(m.requests, RecordedRequest{
		APIKey: c.Param("apiKey"),
		Base:   c.Param("base"),
		Accept: c.GetHeader("Accept"),
	})
	status, body, delay := m.status, m.body, m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	if body != "" || status != 0 {
		if status == 0 {
			status = http.StatusOK
		}
		c.Data(status, "application/json", []byte(body))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":           "success",
		"base_code":        c.Param("base"),
		"conversion_rates": DefaultRates,
	})
}

// SetResponse makes every following request answer with status and the raw body
func (m *MockProviderServer) SetResponse(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.body = body
}

// SetDelay holds every following response for d
func (m *MockProviderServer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Requests returns the requests received so far
func (m *MockProviderServer) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]RecordedRequest, len(m.requests))
	copy(requests, m.requests)
	return requests
}

// URL returns the API base URL, the part preceding the API key
func (m *MockProviderServer) URL() string {
	return m.server.URL + "/v6"
}

// Close shuts the mock server down
func (m *MockProviderServer) Close() {
	m.server.Close()
}

// SuccessBody renders a successful provider payload
func SuccessBody(base string, rates map[string]float64) string {
	body, _ := json.Marshal(map[string]interface{}{
		"result":           "success",
		"base_code":        base,
		"conversion_rates": rates,
	})
	return string(body)
}
