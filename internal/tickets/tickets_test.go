package tickets

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/wahlandcase/attuned.relnotes/internal/config"
	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(config.DefaultConfig().TicketRegex())
}

func TestExtract(t *testing.T) {
	e := newTestExtractor(t)

	text := "* [WOR-12] one\n* wor-3 two and WOR-12 again\n* SWOR-9 is not ours\n* WOR-40\n" +
		"* branch feature/WOR-41_fix and WOR-42abc"
	got := e.Extract(text)
	want := []string{"WOR-12", "WOR-3", "WOR-40", "WOR-41", "WOR-42"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract = %v, want %v", got, want)
	}

	pattern := regexp.MustCompile(`^WOR-[0-9]+$`)
	seen := make(map[string]bool)
	for _, key := range got {
		if seen[key] {
			t.Fatalf("duplicate key %s", key)
		}
		seen[key] = true
		if !pattern.MatchString(key) {
			t.Fatalf("key %q does not match the ticket pattern", key)
		}
	}
}

func TestExtractEmpty(t *testing.T) {
	e := newTestExtractor(t)

	if got := e.Extract("nothing to see"); len(got) != 0 {
		t.Fatalf("expected no tickets, got %v", got)
	}
}

func TestExtractTitles(t *testing.T) {
	e := newTestExtractor(t)

	text := "## What's Changed\r\n" +
		"* [WOR-1234] Fix login by @alice in https://github.com/o/r/pull/12\r\n" +
		"* WOR-77: Faster search (https://github.com/o/r/pull/13)\r\n" +
		"* [WOR-5]\r\n" +
		"* [WOR-8] [WOR-9] Shared fix\r\n"

	got := e.ExtractTitles(text)
	want := map[string]string{
		"WOR-1234": "Fix login",
		"WOR-77":   "Faster search (<https://github.com/o/r/pull/13|#13>)",
		"WOR-5":    models.NoTitle,
		"WOR-8":    "Shared fix",
		"WOR-9":    "Shared fix",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTitles = %#v, want %#v", got, want)
	}
}

func TestExtractTitlesLaterLineWins(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractTitles("* WOR-1 first text\n* WOR-1 - second text")
	if got["WOR-1"] != "second text" {
		t.Fatalf("expected later occurrence to win, got %q", got["WOR-1"])
	}
}

func TestExtractTitlesAttributionOnly(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractTitles("* [WOR-2] by @bob in https://github.com/o/r/pull/3")
	if got["WOR-2"] != models.NoTitle {
		t.Fatalf("expected placeholder title, got %q", got["WOR-2"])
	}
}

func TestExtractFixVersion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "first versions url wins",
			text: "## Release\nhttps://attuned.atlassian.net/projects/WOR/versions/10042/tab/release-report-all-issues\nsee also https://attuned.atlassian.net/projects/WOR/versions/9",
			want: "10042",
		},
		{
			name: "inside a slack link",
			text: "<https://attuned.atlassian.net/projects/WOR/versions/555|Release>",
			want: "555",
		},
		{
			name: "missing",
			text: "## What's Changed\n* WOR-1 thing",
			want: "",
		},
		{
			name: "non numeric id",
			text: "https://attuned.atlassian.net/projects/WOR/versions/latest",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFixVersion(tt.text); got != tt.want {
				t.Fatalf("ExtractFixVersion = %q, want %q", got, tt.want)
			}
		})
	}
}
