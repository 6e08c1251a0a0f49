//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gridvoice/gridvoice/internal/api/handlers"
	"github.com/gridvoice/gridvoice/internal/bot"
	"github.com/gridvoice/gridvoice/internal/energy"
	"github.com/gridvoice/gridvoice/internal/jobs"
	"github.com/gridvoice/gridvoice/internal/server"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	ServerURL    string
	ServerCloser func()
	Store        *memReportStore
	HTTPClient   *http.Client
}

// memReportStore is an in-memory archive target standing in for the S3
// bucket during tests.
type memReportStore struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemReportStore() *memReportStore {
	return &memReportStore{objects: map[string]string{}}
}

func (s *memReportStore) PutReport(ctx context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = string(body)
	return nil
}

// Keys returns the archived object keys in no particular order.
func (s *memReportStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the archived body for key.
func (s *memReportStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[key]
	return body, ok
}

// SetupE2EEnv assembles the full assistant stack against the shipped FAQ
// catalog and serves it over a real TCP listener.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	kb := bot.LoadKnowledgeBase("../../data/faq.json")
	if kb.Len() == 0 {
		t.Fatalf("expected a non-empty FAQ catalog at ../../data/faq.json")
	}

	contact := bot.Contact{
		Phone:     "0 800 500 425",
		Email:     "support@gridvoice.ua",
		Emergency: "104",
	}

	engine, err := bot.NewEngine(bot.EngineConfig{
		Knowledge: kb,
		Intents:   bot.DefaultIntents(contact),
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	calc := energy.NewCalculator(energy.Tariffs{
		ResidentialDay:   2.64,
		ResidentialNight: 1.32,
		Commercial:       4.20,
		Industrial:       3.85,
	})

	store := newMemReportStore()
	archiver := jobs.NewReportArchiver(engine, store)

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:   handlers.NewChatHandler(engine),
		StatsHandler:  handlers.NewStatsHandler(engine, archiver),
		EnergyHandler: handlers.NewEnergyHandler(calc),
		SpeechHandler: handlers.NewSpeechHandler(nil),
	})

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, router, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		Store:        store,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func startServer(t *testing.T, handler http.Handler, port int) (string, func()) {
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: handler,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			t.Errorf("server error: %v", err)
		}
	}()

	url := fmt.Sprintf("http://%s", srv.Addr)
	waitForServer(t, url)

	closer := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}

	return url, closer
}

func waitForServer(t *testing.T, url string) {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(10 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("server at %s did not become ready", url)
}

// APIResponse mirrors the envelope every JSON endpoint uses.
type APIResponse struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request and decodes the response envelope.
func (e *E2ETestEnv) Get(path string) (*APIResponse, int, error) {
	resp, err := e.HTTPClient.Get(e.ServerURL + path)
	if err != nil {
		return nil, 0, err
	}
	return decodeResponse(resp)
}

// Post performs a POST request with a JSON body and decodes the response
// envelope.
func (e *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := e.HTTPClient.Post(e.ServerURL+path, "application/json", reqBody)
	if err != nil {
		return nil, 0, err
	}
	return decodeResponse(resp)
}

// GetRaw performs a GET request and returns the raw body for plain-text
// and CSV endpoints.
func (e *E2ETestEnv) GetRaw(path string) ([]byte, int, error) {
	resp, err := e.HTTPClient.Get(e.ServerURL + path)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func decodeResponse(resp *http.Response) (*APIResponse, int, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var envelope APIResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("invalid response body %q: %w", data, err)
	}
	return &envelope, resp.StatusCode, nil
}
