package github

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

// CheckAuth verifies gh CLI is authenticated
func CheckAuth() error {
	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not authenticated with GitHub CLI. Run 'gh auth login' or set GH_TOKEN")
	}
	return nil
}

// ghRelease is the JSON shape of `gh release view --json`
type ghRelease struct {
	TagName string `json:"tagName"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Body    string `json:"body"`
}

// GetRelease loads a release's name, URL and body. An empty tag selects the
// latest release; an empty repo lets gh infer it from the working directory.
func GetRelease(repo, tag string) (*models.Release, error) {
	args := []string{"release", "view"}
	if tag != "" {
		args = append(args, tag)
	}
	if repo != "" {
		args = append(args, "--repo", repo)
	}
	args = append(args, "--json", "tagName,name,url,body")

	cmd := exec.Command("gh", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("gh release view failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("gh release view failed: %w", err)
	}

	return parseRelease(output)
}

func parseRelease(output []byte) (*models.Release, error) {
	var release ghRelease
	if err := json.Unmarshal(output, &release); err != nil {
		return nil, fmt.Errorf("failed to parse gh release view output: %w", err)
	}

	name := release.Name
	if name == "" {
		name = release.TagName
	}

	return &models.Release{
		Name: name,
		URL:  release.URL,
		Body: release.Body,
	}, nil
}
