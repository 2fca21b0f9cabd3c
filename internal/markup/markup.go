// Package markup rewrites GitHub release-note markdown into Slack mrkdwn.
//
// The rewrite is an ordered pipeline of line rules. Order matters where
// patterns overlap: attribution suffixes are dropped before PR URLs are
// linked, and source emphasis is flattened before headings add their own
// bold markers.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wahlandcase/attuned.relnotes/internal/config"
	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

const (
	// Fence opens and closes a Slack code block
	Fence = "```"

	// DefaultReleaseLabel is the link text for the fix version link
	DefaultReleaseLabel = "Release"
)

var (
	attributionPattern = regexp.MustCompile(` by @[A-Za-z0-9][A-Za-z0-9-]*.*$`)
	pullURLPattern     = regexp.MustCompile(`<[^<>]*>|https://github\.com/[^\s/<>|]+/[^\s/<>|]+/pull/\d+`)
	headingPattern     = regexp.MustCompile(`^\s*(?:#{1,6}\s+|#{2,6})(.*?)\s*$`)
)

// Formatter holds the compiled rules for one ticket project
type Formatter struct {
	linkable        *regexp.Regexp
	releaseMarker   *regexp.Regexp
	releaseLabel    string
	changesLine     string
	changelogMarker *regexp.Regexp
	ticketURL       func(string) string
}

// NewFormatter builds a Formatter from the ticket and markup settings in cfg
func NewFormatter(cfg *config.Config) *Formatter {
	keyword := cfg.Markup.ReleaseKeyword
	f := &Formatter{
		// Existing <...> link tokens are matched first so tickets inside them stay untouched
		linkable:      regexp.MustCompile(`<[^<>]*>|` + cfg.TicketRegex().String()),
		releaseMarker: regexp.MustCompile(`(?i)^\s*#{1,6}\s*` + regexp.QuoteMeta(keyword) + `\s*$`),
		releaseLabel:  cfg.Markup.ReleaseLabel,
		changesLine:   "*" + cfg.Markup.ChangesHeading + "*",
		ticketURL:     cfg.TicketURL,
	}
	if f.releaseLabel == "" {
		f.releaseLabel = DefaultReleaseLabel
	}
	if marker := cfg.Markup.ChangelogMarker; marker != "" {
		// The trailer starts its line, optionally behind bold or heading markup
		f.changelogMarker = regexp.MustCompile(`(?i)^\s*(?:\*\*|#{1,6}\s*)?` + regexp.QuoteMeta(marker))
	}
	return f
}

// Format converts release-note markdown to Slack mrkdwn. The result always
// ends with a closing fence, even when no changes section opened one.
func (f *Formatter) Format(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(text, "\n")

	lines = f.truncateChangelog(lines)
	lines = f.linkRelease(lines)

	for i, line := range lines {
		line = StripAttribution(line)
		line = LinkPullRequests(line)
		line = ReplaceEmphasis(line)
		line = BoldHeading(line)
		line = f.LinkTickets(line)
		lines[i] = line
	}

	lines = f.openChangesFence(lines)

	body := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return body + "\n" + Fence
}

// Message renders a release as a complete notification: a linked title line
// followed by the formatted body
func (f *Formatter) Message(release models.Release) string {
	var title string
	switch {
	case release.Name != "" && release.URL != "":
		title = fmt.Sprintf("*<%s|%s>*", release.URL, release.Name)
	case release.Name != "":
		title = "*" + release.Name + "*"
	case release.URL != "":
		title = fmt.Sprintf("*<%s|%s>*", release.URL, release.URL)
	}

	body := f.Format(release.Body)
	if title == "" {
		return body
	}
	return title + "\n\n" + body
}

func (f *Formatter) truncateChangelog(lines []string) []string {
	if f.changelogMarker == nil {
		return lines
	}
	for i, line := range lines {
		if f.changelogMarker.MatchString(line) {
			return lines[:i]
		}
	}
	return lines
}

// linkRelease collapses a release marker heading and the URL line after it
// into a single link line
func (f *Formatter) linkRelease(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if f.releaseMarker.MatchString(lines[i]) && i+1 < len(lines) {
			target := strings.TrimSpace(lines[i+1])
			out = append(out, fmt.Sprintf("<%s|%s>", target, f.releaseLabel))
			i++
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

func (f *Formatter) openChangesFence(lines []string) []string {
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		out = append(out, line)
		if strings.TrimSpace(line) == f.changesLine {
			out = append(out, Fence)
		}
	}
	return out
}

// LinkTickets turns every ticket identifier outside an existing link into a
// tracker link, keeping the identifier as written for the link text
func (f *Formatter) LinkTickets(line string) string {
	return f.linkable.ReplaceAllStringFunc(line, func(match string) string {
		if strings.HasPrefix(match, "<") {
			return match
		}
		return fmt.Sprintf("<%s|%s>", f.ticketURL(match), match)
	})
}

// StripAttribution drops a " by @user" suffix and everything after it
func StripAttribution(line string) string {
	return attributionPattern.ReplaceAllString(line, "")
}

// LinkPullRequests rewrites bare GitHub pull request URLs as "#N" links
func LinkPullRequests(line string) string {
	return pullURLPattern.ReplaceAllStringFunc(line, func(match string) string {
		if strings.HasPrefix(match, "<") {
			return match
		}
		number := match[strings.LastIndex(match, "/")+1:]
		return fmt.Sprintf("<%s|#%s>", match, number)
	})
}

// ReplaceEmphasis flattens every source "*" to the Slack bullet marker
func ReplaceEmphasis(line string) string {
	return strings.ReplaceAll(line, "*", "-")
}

// BoldHeading turns a markdown heading line into a bold line
func BoldHeading(line string) string {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return line
	}
	return "*" + m[1] + "*"
}
