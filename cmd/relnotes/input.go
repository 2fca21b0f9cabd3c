package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wahlandcase/attuned.relnotes/internal/ciout"
	"github.com/wahlandcase/attuned.relnotes/internal/git"
	"github.com/wahlandcase/attuned.relnotes/internal/github"
	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

// latestRelease selects the newest GitHub release
const latestRelease = "latest"

var errNoInput = errors.New("no release notes given: pass TEXT, --file, --tag or --release")

// inputOptions chooses where the release notes come from
type inputOptions struct {
	file    string
	tag     string
	release string
	repo    string
	output  string
	name    string
	url     string
}

func (o *inputOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.file, "file", "f", "", "Read release notes from a file (- for stdin)")
	fs.StringVarP(&o.tag, "tag", "t", "", "Read release notes from an annotated git tag")
	fs.StringVarP(&o.release, "release", "r", "", "Read a GitHub release by tag (\"latest\" for the newest)")
	fs.StringVar(&o.repo, "repo", "", "GitHub repository for --release (OWNER/NAME)")
	fs.StringVarP(&o.output, "output", "o", "", "CI output file (default: $GITHUB_OUTPUT)")
	fs.StringVar(&o.name, "name", "", "Release name (overrides the source's)")
	fs.StringVar(&o.url, "url", "", "Release URL (overrides the source's)")
}

// outputPath returns the CI output file, falling back to the environment
func (o *inputOptions) outputPath() string {
	if o.output != "" {
		return o.output
	}
	return os.Getenv(ciout.EnvVar)
}

// readRelease loads the release from exactly one source and applies the
// --name and --url overrides
func (o *inputOptions) readRelease(cmd *cobra.Command, args []string) (*models.Release, error) {
	release, err := o.readSource(cmd, args)
	if err != nil {
		return nil, err
	}
	if o.name != "" {
		release.Name = o.name
	}
	if o.url != "" {
		release.URL = o.url
	}
	return release, nil
}

func (o *inputOptions) readSource(cmd *cobra.Command, args []string) (*models.Release, error) {
	sources := 0
	for _, set := range []bool{len(args) > 0, o.file != "", o.tag != "", o.release != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, errNoInput
	case sources > 1:
		return nil, fmt.Errorf("only one of TEXT, --file, --tag or --release may be given")
	}

	switch {
	case len(args) > 0:
		return &models.Release{Body: strings.Join(args, " ")}, nil

	case o.file != "":
		body, err := readFile(cmd.InOrStdin(), o.file)
		if err != nil {
			return nil, err
		}
		return &models.Release{Body: body}, nil

	case o.tag != "":
		body, err := git.TagMessage("", o.tag)
		if git.IsNotARepo(err) {
			return nil, fmt.Errorf("--tag needs a git checkout: %w", err)
		}
		if err != nil {
			return nil, err
		}
		return &models.Release{Name: o.tag, Body: body}, nil

	default:
		if err := github.CheckAuth(); err != nil {
			return nil, err
		}
		tag := o.release
		if tag == latestRelease {
			tag = ""
		}
		return github.GetRelease(o.repo, tag)
	}
}

func readFile(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read release notes: %w", err)
	}
	return string(data), nil
}
