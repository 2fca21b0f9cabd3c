package ciout

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

func TestSetSingleLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Set("only_in_tracker", "WOR-1,WOR-2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := w.SetBool("has_differences", true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if got := buf.String(); got != "only_in_tracker=WOR-1,WOR-2\nhas_differences=true\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSetMultiLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Set("slack_message", "line one\nline two"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", buf.String())
	}
	header := lines[0]
	if !strings.HasPrefix(header, "slack_message<<ghadelimiter_") {
		t.Fatalf("unexpected header %q", header)
	}
	delimiter := strings.TrimPrefix(header, "slack_message<<")
	if lines[1] != "line one" || lines[2] != "line two" || lines[3] != delimiter {
		t.Fatalf("unexpected heredoc body %q", buf.String())
	}
}

func TestWriteComparison(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	comparison := models.Comparison{
		OnlyInRelease: []string{},
		OnlyInTracker: []string{"WOR-5678", "WOR-9"},
		Common:        []string{"WOR-1234"},
	}
	onlyInTracker := []models.Ticket{
		{Key: "WOR-5678", Title: "Add export"},
		{Key: "WOR-9", Title: "Multi\nline"},
	}
	if err := w.WriteComparison("10042", comparison, nil, onlyInTracker); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}

	want := strings.Join([]string{
		"fix_version=10042",
		"only_in_release=",
		"only_in_tracker=WOR-5678,WOR-9",
		"only_in_release_count=0",
		"only_in_tracker_count=2",
		"common_count=1",
		"has_differences=true",
		"only_in_release_display=",
		`only_in_tracker_display=WOR-5678: Add export\nWOR-9: Multi\nline`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected outputs.\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := w.SetInt("common_count", 3); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing=1\ncommon_count=3\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	w, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := w.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
