package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
	"github.com/wahlandcase/attuned.relnotes/internal/tickets"
	"github.com/wahlandcase/attuned.relnotes/internal/tracker"
)

var (
	// ErrNoFixVersion means the release text has no tracker versions URL,
	// so there is nothing to compare against
	ErrNoFixVersion = errors.New("no tracker fix version URL found in release notes")

	// ErrTicketMismatch is returned alongside a complete Report when the
	// release notes and the tracker disagree
	ErrTicketMismatch = errors.New("release notes and tracker tickets differ")
)

// Gate checks release-note tickets against the tracker's fix version
type Gate struct {
	Extractor *tickets.Extractor
	Tracker   tracker.Searcher
	Project   string
	Logger    *slog.Logger
}

// Report is the outcome of one gate run
type Report struct {
	FixVersion    string
	Comparison    models.Comparison
	ReleaseTitles map[string]string
	TrackerTitles map[string]string
}

// Run extracts the fix version and tickets from releaseText, fetches the
// tracker's tickets for that version and compares the two. A mismatch
// returns the full report together with ErrTicketMismatch.
func (g *Gate) Run(ctx context.Context, releaseText string) (*Report, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fixVersion := tickets.ExtractFixVersion(releaseText)
	if fixVersion == "" {
		return nil, ErrNoFixVersion
	}
	logger.Debug("found fix version", "fix_version", fixVersion)

	trackerTitles, err := tracker.FetchTicketsWithTitles(ctx, g.Tracker, g.Project, fixVersion)
	if err != nil {
		return nil, fmt.Errorf("fetching tracker tickets for fix version %s: %w", fixVersion, err)
	}

	releaseTitles := g.Extractor.ExtractTitles(releaseText)
	releaseKeys := g.Extractor.Extract(releaseText)

	report := &Report{
		FixVersion:    fixVersion,
		Comparison:    Compare(releaseKeys, tickets.SortedKeys(trackerTitles)),
		ReleaseTitles: releaseTitles,
		TrackerTitles: trackerTitles,
	}

	logger.Info("compared tickets",
		"fix_version", fixVersion,
		"release", len(releaseKeys),
		"tracker", len(trackerTitles),
		"only_in_release", len(report.Comparison.OnlyInRelease),
		"only_in_tracker", len(report.Comparison.OnlyInTracker),
	)

	if report.Comparison.HasDifferences() {
		return report, ErrTicketMismatch
	}
	return report, nil
}

// OnlyInRelease returns the release-only tickets with their release-note titles
func (r *Report) OnlyInRelease() []models.Ticket {
	return withTitles(r.Comparison.OnlyInRelease, r.ReleaseTitles)
}

// OnlyInTracker returns the tracker-only tickets with their tracker summaries
func (r *Report) OnlyInTracker() []models.Ticket {
	return withTitles(r.Comparison.OnlyInTracker, r.TrackerTitles)
}

// Common returns the tickets found on both sides with their release-note titles
func (r *Report) Common() []models.Ticket {
	return withTitles(r.Comparison.Common, r.ReleaseTitles)
}

func withTitles(keys []string, titles map[string]string) []models.Ticket {
	out := make([]models.Ticket, 0, len(keys))
	for _, key := range keys {
		out = append(out, models.NewTicket(key, titles[key]))
	}
	return out
}
