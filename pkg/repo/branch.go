package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CreateBranch creates a new branch pointing at the commit the start
// point resolves to. The start point may be a ref name (including
// "HEAD") or a raw commit hash. Returns an error if the branch already
// exists or the start point does not resolve.
func (r *Repo) CreateBranch(name, startPoint string) error {
	if _, err := os.Stat(r.refPath("refs/heads/" + name)); err == nil {
		return fmt.Errorf("create branch: branch %q already exists", name)
	}

	target, err := r.ResolveRef(startPoint)
	if err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	if target == "" {
		return fmt.Errorf("create branch %q: cannot resolve %q to a commit", name, startPoint)
	}

	if err := r.UpdateRef("refs/heads/"+name, string(target), false); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

// DeleteBranch removes the branch ref file. Returns an error if the
// branch is the current branch or does not exist.
func (r *Repo) DeleteBranch(name string) error {
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if current == name {
		return fmt.Errorf("delete branch: cannot delete current branch %q", name)
	}

	if err := os.Remove(r.refPath("refs/heads/" + name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("delete branch: branch %q does not exist", name)
		}
		return fmt.Errorf("delete branch %q: %w", name, err)
	}
	return nil
}

// ListBranches returns the branch names under refs/heads/, sorted
// alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	headsDir := filepath.Join(r.GritDir, "refs", "heads")

	entries, err := os.ReadDir(headsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Checkout switches HEAD to the named branch by rewriting it as a
// symbolic ref. The branch must resolve to a commit; the working
// directory is left untouched.
func (r *Repo) Checkout(branch string) error {
	target, err := r.ResolveRef("refs/heads/" + branch)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if target == "" {
		return fmt.Errorf("checkout: branch %q not found", branch)
	}

	if err := r.UpdateRef("HEAD", "refs/heads/"+branch, true); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}
