// Package gitrepo resolves and validates git repositories via libgit2.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"

	git2go "github.com/libgit2/git2go/v34"
)

// shortHashLen is the abbreviated hash length used in status output.
const shortHashLen = 7

// ErrNotARepository indicates the path does not resolve to a git root.
var ErrNotARepository = errors.New("not a git repository")

// Info describes a resolved repository.
type Info struct {
	// Path is the absolute working-directory path of the repository.
	Path string
	// Head is the abbreviated HEAD commit hash, empty for an unborn branch.
	Head string
}

// Resolve opens the repository at path and returns its resolved info.
// The path must be an accessible repository root or working directory.
func Resolve(path string) (*Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}

	repo, err := git2go.OpenRepository(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, abs)
	}
	defer repo.Free()

	info := &Info{Path: abs}

	workdir := repo.Workdir()
	if workdir != "" {
		info.Path = filepath.Clean(workdir)
	}

	head, headErr := repo.Head()
	if headErr == nil {
		defer head.Free()

		full := head.Target().String()
		if len(full) > shortHashLen {
			info.Head = full[:shortHashLen]
		} else {
			info.Head = full
		}
	}

	return info, nil
}
