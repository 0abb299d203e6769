package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/grit/pkg/object"
)

// symbolicPrefix marks a ref file whose content names another ref
// instead of holding a commit hash.
const symbolicPrefix = "ref: "

// maxSymrefDepth bounds symbolic ref resolution. Nothing prevents ref
// files on disk from forming a cycle, so resolution gives up after this
// many indirections instead of recursing forever.
const maxSymrefDepth = 10

// ErrRefCycle is reported when symbolic ref resolution exceeds
// maxSymrefDepth indirections.
var ErrRefCycle = errors.New("symbolic ref chain too deep")

// refPath returns the file backing the named ref. Names use forward
// slashes (e.g. "refs/heads/main", "HEAD").
func (r *Repo) refPath(name string) string {
	return filepath.Join(r.GritDir, filepath.FromSlash(name))
}

// UpdateRef writes the named ref. A symbolic ref records the target ref
// name behind the "ref: " marker; a direct ref records a commit hash,
// which must be a well-formed 40-hex digest — malformed digests are
// rejected before anything touches disk. Parent directories are created
// as needed, and the write is a plain overwrite: grit assumes a single
// writer per repository.
func (r *Repo) UpdateRef(name, target string, symbolic bool) error {
	var content string
	if symbolic {
		content = symbolicPrefix + target + "\n"
	} else {
		if !object.ValidHash(target) {
			return fmt.Errorf("update ref %q: invalid commit hash %q", name, target)
		}
		content = target + "\n"
	}

	path := r.refPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	return nil
}

// ResolveRef resolves a ref name to a commit hash, following symbolic
// refs. The name is tried verbatim first, then under refs/heads/ as a
// branch shorthand. A ref that does not exist resolves to ("", nil) —
// absence is a result, not an error. A symbolic chain longer than
// maxSymrefDepth reports ErrRefCycle.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	return r.resolveRef(name, 0)
}

func (r *Repo) resolveRef(name string, depth int) (object.Hash, error) {
	if depth > maxSymrefDepth {
		return "", fmt.Errorf("resolve ref %q: %w", name, ErrRefCycle)
	}

	data, err := os.ReadFile(r.refPath(name))
	if os.IsNotExist(err) {
		// Branch shorthand: "main" → "refs/heads/main".
		data, err = os.ReadFile(r.refPath("refs/heads/" + name))
		if os.IsNotExist(err) {
			return "", nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, err)
	}

	content := strings.TrimSpace(string(data))
	if strings.HasPrefix(content, symbolicPrefix) {
		return r.resolveRef(strings.TrimPrefix(content, symbolicPrefix), depth+1)
	}
	return object.Hash(content), nil
}

// CurrentBranch reads HEAD and returns the branch short name if HEAD is
// a symbolic ref under refs/heads/ (e.g. "ref: refs/heads/main" →
// "main"). A detached HEAD returns "".
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}

	const prefix = "refs/heads/"
	if strings.HasPrefix(head, prefix) {
		return strings.TrimPrefix(head, prefix), nil
	}
	return "", nil
}
