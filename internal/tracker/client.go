// Package tracker queries Jira for the tickets assigned to a fix version.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/go-jira"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

const (
	defaultSearchPath = "rest/api/3/search/jql"
	defaultMaxResults = 100
)

// Searcher returns the tickets of a project that carry the given fix version
type Searcher interface {
	Search(ctx context.Context, project, fixVersion string) ([]models.Ticket, error)
}

// Config holds the settings for a Jira search client
type Config struct {
	// BaseURL is the Jira site root (e.g., "https://attuned.atlassian.net")
	BaseURL string

	// Email and Token are the basic-auth credentials (Atlassian API token)
	Email string
	Token string

	// SearchPath is resolved against BaseURL. Defaults to "rest/api/3/search/jql".
	SearchPath string

	// MaxResults caps the number of issues returned. Defaults to 100.
	MaxResults int

	// Transport is the underlying round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Client is a Searcher backed by the Jira REST API
type Client struct {
	jira       *jira.Client
	searchPath string
	maxResults int
	logger     *slog.Logger
}

// NewClient validates config and builds an authenticated Jira client
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("tracker: base URL is required")
	}
	if config.Email == "" || config.Token == "" {
		return nil, fmt.Errorf("tracker: email and API token are required")
	}

	searchPath := strings.TrimLeft(config.SearchPath, "/")
	if searchPath == "" {
		searchPath = defaultSearchPath
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := &jira.BasicAuthTransport{
		Username:  config.Email,
		Password:  config.Token,
		Transport: config.Transport,
	}

	jiraClient, err := jira.NewClient(transport.Client(), config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	return &Client{
		jira:       jiraClient,
		searchPath: searchPath,
		maxResults: maxResults,
		logger:     logger,
	}, nil
}

// searchResponse is the subset of the Jira search payload we read
type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
		} `json:"fields"`
	} `json:"issues"`
}

// Search runs a JQL search for the project's issues in fixVersion, newest
// first. Any transport, status or decode failure is returned as an error.
func (client *Client) Search(ctx context.Context, project, fixVersion string) ([]models.Ticket, error) {
	query := url.Values{}
	query.Set("jql", BuildJQL(project, fixVersion))
	query.Set("fields", "summary")
	query.Set("maxResults", strconv.Itoa(client.maxResults))

	client.logger.Debug("searching tracker", "project", project, "fix_version", fixVersion)

	request, err := client.jira.NewRequestWithContext(ctx, http.MethodGet, client.searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tracker: creating request: %w", err)
	}

	var result searchResponse
	response, err := client.jira.Do(request, &result)
	if err != nil {
		if response != nil && response.Response != nil {
			defer response.Body.Close()
			if response.StatusCode < 200 || response.StatusCode >= 300 {
				return nil, parseAPIError(response.StatusCode, response.Body)
			}
		}
		return nil, fmt.Errorf("tracker: search: %w", err)
	}

	tickets := make([]models.Ticket, 0, len(result.Issues))
	for _, issue := range result.Issues {
		tickets = append(tickets, models.NewTicket(strings.ToUpper(issue.Key), issue.Fields.Summary))
	}

	if len(tickets) >= client.maxResults {
		client.logger.Warn("tracker search hit the result cap, tickets may be missing",
			"max_results", client.maxResults,
			"fix_version", fixVersion,
		)
	}

	return tickets, nil
}

// BuildJQL returns the fix-version query for a project
func BuildJQL(project, fixVersion string) string {
	return fmt.Sprintf("project = %q AND fixVersion = %s ORDER BY created DESC", project, fixVersion)
}

// FetchTickets returns the sorted ticket keys for a fix version
func FetchTickets(ctx context.Context, searcher Searcher, project, fixVersion string) ([]string, error) {
	titles, err := FetchTicketsWithTitles(ctx, searcher, project, fixVersion)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(titles))
	for key := range titles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// FetchTicketsWithTitles maps each ticket key in a fix version to its summary
func FetchTicketsWithTitles(ctx context.Context, searcher Searcher, project, fixVersion string) (map[string]string, error) {
	found, err := searcher.Search(ctx, project, fixVersion)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(found))
	for _, ticket := range found {
		titles[ticket.Key] = ticket.Title
	}
	return titles, nil
}
