package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the repo-local config file looked up in the working directory
const FileName = ".relnotes.toml"

type Config struct {
	Tickets TicketsConfig `toml:"tickets"`
	Tracker TrackerConfig `toml:"tracker"`
	Slack   SlackConfig   `toml:"slack"`
	Markup  MarkupConfig  `toml:"markup"`

	// Compiled regex from Tickets.Pattern (not serialized)
	ticketRegex *regexp.Regexp
}

type TicketsConfig struct {
	Pattern   string `toml:"pattern"`
	BrowseURL string `toml:"browse_url"`
}

type TrackerConfig struct {
	BaseURL    string `toml:"base_url"`
	Project    string `toml:"project"`
	SearchPath string `toml:"search_path"`
	MaxResults int    `toml:"max_results"`
	EmailEnv   string `toml:"email_env"`
	TokenEnv   string `toml:"token_env"`
}

type SlackConfig struct {
	WebhookURL  string `toml:"webhook_url"`
	UnfurlLinks bool   `toml:"unfurl_links"`
	UnfurlMedia bool   `toml:"unfurl_media"`
}

type MarkupConfig struct {
	ReleaseKeyword  string `toml:"release_keyword"`
	ReleaseLabel    string `toml:"release_label"`
	ChangesHeading  string `toml:"changes_heading"`
	ChangelogMarker string `toml:"changelog_marker"`
}

func DefaultConfig() *Config {
	return &Config{
		Tickets: TicketsConfig{
			Pattern:   "WOR-[0-9]+",
			BrowseURL: "https://attuned.atlassian.net/browse",
		},
		Tracker: TrackerConfig{
			BaseURL:    "https://attuned.atlassian.net",
			Project:    "WOR",
			SearchPath: "rest/api/3/search/jql",
			MaxResults: 100,
			EmailEnv:   "JIRA_EMAIL",
			TokenEnv:   "JIRA_API_TOKEN",
		},
		Markup: MarkupConfig{
			ReleaseKeyword:  "JIRA",
			ReleaseLabel:    "Release",
			ChangesHeading:  "What's Changed",
			ChangelogMarker: "Full Changelog",
		},
	}
}

// Path returns the per-user config file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes.toml"), nil
}

// Load reads the config at path. An empty path tries the repo-local file,
// then the per-user file, and falls back to defaults when neither exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = resolvePath()
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Defaults only
		default:
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.compileRegex(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	path, err := Path()
	if err != nil {
		return ""
	}
	return path
}

// applyEnv lets CI override endpoints without touching the config file
func (c *Config) applyEnv() {
	if v := os.Getenv("JIRA_BASE_URL"); v != "" {
		c.Tracker.BaseURL = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		c.Slack.WebhookURL = v
	}
}

func (c *Config) compileRegex() error {
	if c.Tickets.Pattern == "" {
		return fmt.Errorf("tickets.pattern must not be empty")
	}
	// Leading boundary only: "SWOR-9" is not a ticket, "WOR-12_fix" is
	re, err := regexp.Compile(`(?i)\b(` + c.Tickets.Pattern + `)`)
	if err != nil {
		return fmt.Errorf("invalid tickets.pattern %q: %w", c.Tickets.Pattern, err)
	}
	c.ticketRegex = re
	return nil
}

// TicketRegex returns the compiled ticket pattern regex
func (c *Config) TicketRegex() *regexp.Regexp {
	if c.ticketRegex == nil {
		// Config built by hand (tests); the default pattern always compiles
		_ = c.compileRegex()
	}
	return c.ticketRegex
}

// Save writes the config as TOML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TicketURL returns the browse link for a ticket key
func (c *Config) TicketURL(key string) string {
	return strings.TrimRight(c.Tickets.BrowseURL, "/") + "/" + strings.ToUpper(key)
}

// MissingCredentialsError names the environment variables that were unset
type MissingCredentialsError struct {
	Vars []string
}

func (e *MissingCredentialsError) Error() string {
	return "missing tracker credentials: set " + strings.Join(e.Vars, ", ")
}

// Credentials reads the tracker email and API token from the environment
func (c *Config) Credentials() (email, token string, err error) {
	email = os.Getenv(c.Tracker.EmailEnv)
	token = os.Getenv(c.Tracker.TokenEnv)

	var missing []string
	if email == "" {
		missing = append(missing, c.Tracker.EmailEnv)
	}
	if token == "" {
		missing = append(missing, c.Tracker.TokenEnv)
	}
	if len(missing) > 0 {
		return "", "", &MissingCredentialsError{Vars: missing}
	}
	return email, token, nil
}
