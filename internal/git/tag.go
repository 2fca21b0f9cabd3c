package git

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// TagNotFoundError indicates the tag does not exist in the repository
type TagNotFoundError struct {
	Tag string
}

func (e *TagNotFoundError) Error() string {
	return "tag not found: " + e.Tag
}

// TagMessage returns the release text stored on a tag. Annotated tags yield
// their message; lightweight tags fall back to the tagged commit's message.
func TagMessage(repoPath, tag string) (string, error) {
	repo, err := openFrom(repoPath)
	if err != nil {
		return "", err
	}
	return tagMessage(repo, tag)
}

func tagMessage(repo *git.Repository, tag string) (string, error) {
	ref, err := repo.Tag(strings.TrimPrefix(tag, "refs/tags/"))
	if err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return "", &TagNotFoundError{Tag: tag}
		}
		return "", err
	}

	tagObject, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return strings.TrimRight(tagObject.Message, "\n"), nil
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return "", err
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(commit.Message, "\n"), nil
}
