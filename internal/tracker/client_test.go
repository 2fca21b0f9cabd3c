package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

// newTestClient creates a Client backed by the given httptest.Server
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Email:      "ci@example.com",
		Token:      "test-token",
		MaxResults: 50,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestSearch(t *testing.T) {
	var receivedPath, receivedJQL, receivedFields, receivedMax string
	var receivedUser, receivedPass string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedPath = request.URL.Path
		receivedJQL = request.URL.Query().Get("jql")
		receivedFields = request.URL.Query().Get("fields")
		receivedMax = request.URL.Query().Get("maxResults")
		receivedUser, receivedPass, _ = request.BasicAuth()

		json.NewEncoder(writer).Encode(map[string]any{
			"issues": []map[string]any{
				{"key": "WOR-5678", "fields": map[string]any{"summary": "Add export"}},
				{"key": "wor-1234", "fields": map[string]any{"summary": "Fix login"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	got, err := client.Search(context.Background(), "WOR", "10042")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if receivedPath != "/rest/api/3/search/jql" {
		t.Errorf("path = %s, want /rest/api/3/search/jql", receivedPath)
	}
	if want := `project = "WOR" AND fixVersion = 10042 ORDER BY created DESC`; receivedJQL != want {
		t.Errorf("jql = %q, want %q", receivedJQL, want)
	}
	if receivedFields != "summary" {
		t.Errorf("fields = %q, want summary", receivedFields)
	}
	if receivedMax != "50" {
		t.Errorf("maxResults = %q, want 50", receivedMax)
	}
	if receivedUser != "ci@example.com" || receivedPass != "test-token" {
		t.Errorf("basic auth = %q/%q", receivedUser, receivedPass)
	}

	want := []models.Ticket{
		{Key: "WOR-5678", Title: "Add export"},
		{Key: "WOR-1234", Title: "Fix login"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tickets = %+v, want %+v", got, want)
	}
}

func TestSearch_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"errorMessages":["Client must be authenticated to access this resource."],"errors":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Search(context.Background(), "WOR", "1")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiError.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiError.StatusCode)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized = false, want true")
	}
	if got := err.Error(); got != "tracker: HTTP 401: Client must be authenticated to access this resource." {
		t.Errorf("unexpected error text: %s", got)
	}
}

func TestSearch_PlainErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Search(context.Background(), "WOR", "1")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiError.StatusCode != http.StatusBadGateway || len(apiError.Messages) != 1 || apiError.Messages[0] != "upstream down" {
		t.Errorf("unexpected APIError: %+v", apiError)
	}
	if IsUnauthorized(err) {
		t.Error("IsUnauthorized = true for 502")
	}
}

func TestSearch_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"issues": [`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.Search(context.Background(), "WOR", "1"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestSearch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	if _, err := client.Search(context.Background(), "WOR", "1"); err == nil {
		t.Fatal("expected error when the tracker is unreachable")
	}
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no base url", Config{Email: "a@b.c", Token: "t"}},
		{"no email", Config{BaseURL: "https://jira.example.com", Token: "t"}},
		{"no token", Config{BaseURL: "https://jira.example.com", Email: "a@b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.config); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// fakeSearcher returns a fixed result set
type fakeSearcher struct {
	tickets []models.Ticket
	err     error
}

func (f fakeSearcher) Search(context.Context, string, string) ([]models.Ticket, error) {
	return f.tickets, f.err
}

func TestFetchTickets(t *testing.T) {
	searcher := fakeSearcher{tickets: []models.Ticket{
		{Key: "WOR-9", Title: "nine"},
		{Key: "WOR-10", Title: "ten"},
	}}

	keys, err := FetchTickets(context.Background(), searcher, "WOR", "1")
	if err != nil {
		t.Fatalf("FetchTickets: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"WOR-10", "WOR-9"}) {
		t.Errorf("keys = %v", keys)
	}

	titles, err := FetchTicketsWithTitles(context.Background(), searcher, "WOR", "1")
	if err != nil {
		t.Fatalf("FetchTicketsWithTitles: %v", err)
	}
	if titles["WOR-10"] != "ten" {
		t.Errorf("titles = %v", titles)
	}
}

func TestFetchTickets_PropagatesError(t *testing.T) {
	searcher := fakeSearcher{err: errors.New("boom")}
	if _, err := FetchTickets(context.Background(), searcher, "WOR", "1"); err == nil {
		t.Fatal("expected error to propagate instead of an empty set")
	}
}
