// Package ciout writes step outputs in the GitHub Actions GITHUB_OUTPUT file format.
package ciout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

// EnvVar names the file GitHub Actions reads step outputs from
const EnvVar = "GITHUB_OUTPUT"

// Writer appends key=value outputs
type Writer struct {
	w      io.Writer
	closer io.Closer
}

// NewWriter wraps w; the caller keeps ownership of it
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Open appends to the output file at path. An empty path discards every
// output so the tool behaves the same outside CI.
func Open(path string) (*Writer, error) {
	if path == "" {
		return &Writer{w: io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// Close releases the output file, if Open created one
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Set writes one output. Values containing newlines use the heredoc form
// with a random delimiter.
func (w *Writer) Set(key, value string) error {
	if !strings.Contains(value, "\n") {
		_, err := fmt.Fprintf(w.w, "%s=%s\n", key, value)
		return err
	}

	delimiter, err := newDelimiter()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.w, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	return err
}

// SetBool writes "true" or "false"
func (w *Writer) SetBool(key string, value bool) error {
	return w.Set(key, strconv.FormatBool(value))
}

// SetInt writes a decimal count
func (w *Writer) SetInt(key string, value int) error {
	return w.Set(key, strconv.Itoa(value))
}

// WriteComparison writes the ticket check outputs consumed by later workflow steps
func (w *Writer) WriteComparison(fixVersion string, comparison models.Comparison, onlyInRelease, onlyInTracker []models.Ticket) error {
	steps := []func() error{
		func() error { return w.Set("fix_version", fixVersion) },
		func() error { return w.Set("only_in_release", strings.Join(comparison.OnlyInRelease, ",")) },
		func() error { return w.Set("only_in_tracker", strings.Join(comparison.OnlyInTracker, ",")) },
		func() error { return w.SetInt("only_in_release_count", len(comparison.OnlyInRelease)) },
		func() error { return w.SetInt("only_in_tracker_count", len(comparison.OnlyInTracker)) },
		func() error { return w.SetInt("common_count", len(comparison.Common)) },
		func() error { return w.SetBool("has_differences", comparison.HasDifferences()) },
		func() error { return w.Set("only_in_release_display", DisplayList(onlyInRelease)) },
		func() error { return w.Set("only_in_tracker_display", DisplayList(onlyInTracker)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("writing outputs: %w", err)
		}
	}
	return nil
}

// DisplayList renders "KEY: title" entries joined by a literal \n so the
// list stays on one output line and can be dropped into a JSON payload
func DisplayList(tickets []models.Ticket) string {
	entries := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		entries = append(entries, EscapeNewlines(ticket.Key+": "+ticket.Title))
	}
	return strings.Join(entries, `\n`)
}

// EscapeNewlines replaces real newlines with the two characters \n
func EscapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", `\n`)
}

func newDelimiter() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(buf), nil
}
