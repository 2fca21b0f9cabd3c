package git

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FindRepoRoot walks up from start to the nearest directory holding a repository
func FindRepoRoot(start string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if IsGitRepo(path) {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", &NotARepoError{Path: start}
		}
		path = parent
	}
}

// NotARepoError indicates no repository was found at or above Path
type NotARepoError struct {
	Path string
}

func (e *NotARepoError) Error() string {
	return "not a git repository (or any parent): " + e.Path
}

// IsNotARepo reports whether err is a NotARepoError
func IsNotARepo(err error) bool {
	var target *NotARepoError
	return errors.As(err, &target)
}

// openFrom opens the repository containing path, defaulting to the working directory
func openFrom(path string) (*git.Repository, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = cwd
	}
	root, err := FindRepoRoot(path)
	if err != nil {
		return nil, err
	}
	return git.PlainOpen(root)
}
