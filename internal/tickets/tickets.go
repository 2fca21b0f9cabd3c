package tickets

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.relnotes/internal/markup"
	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

var (
	fixVersionPattern = regexp.MustCompile(`https?://[^\s<>|)]*/versions/(\d+)`)
	titleLeadPattern  = regexp.MustCompile(`^[\s\]\)\}:;,.|\-–—]+`)
)

// Extractor finds ticket identifiers in release-note text
type Extractor struct {
	ticketRegex *regexp.Regexp
}

// NewExtractor wraps a compiled ticket regex whose first group is the identifier
func NewExtractor(ticketRegex *regexp.Regexp) *Extractor {
	return &Extractor{ticketRegex: ticketRegex}
}

// Extract returns the distinct ticket IDs found in text, upper-cased and sorted
func (e *Extractor) Extract(text string) []string {
	matches := e.ticketRegex.FindAllStringSubmatch(text, -1)

	ticketSet := make(map[string]bool)
	for _, match := range matches {
		if len(match) > 1 {
			ticketSet[strings.ToUpper(match[1])] = true
		}
	}

	return SortedKeys(ticketSet)
}

// ExtractTitles maps each ticket ID to the text that follows it on its line.
// Every identifier on a line shares the text after the last one; a ticket
// repeated on a later line takes that line's text.
func (e *Extractor) ExtractTitles(text string) map[string]string {
	titles := make(map[string]string)

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		locs := e.ticketRegex.FindAllStringSubmatchIndex(line, -1)
		if len(locs) == 0 {
			continue
		}

		last := locs[len(locs)-1]
		title := cleanTitle(line[last[1]:])

		for _, loc := range locs {
			key := strings.ToUpper(line[loc[2]:loc[3]])
			titles[key] = title
		}
	}

	return titles
}

func cleanTitle(rest string) string {
	rest = markup.StripAttribution(rest)
	rest = titleLeadPattern.ReplaceAllString(rest, "")
	rest = markup.LinkPullRequests(rest)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return models.NoTitle
	}
	return rest
}

// ExtractFixVersion returns the numeric id of the first tracker versions URL
// in text, or "" when there is none
func ExtractFixVersion(text string) string {
	match := fixVersionPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// SortedKeys returns the keys of a set in ascending order
func SortedKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
