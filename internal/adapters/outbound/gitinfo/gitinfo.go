// Package gitinfo records repository provenance for written goldens.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.RepoInfo using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

// CommitHash returns the HEAD commit of the repository containing path.
// The harness root is usually a subdirectory of the analyzer repo, so
// the search walks up to the enclosing .git.
func (a *Adapter) CommitHash(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
