package repo

import (
	"fmt"
	"time"

	"github.com/odvcencio/grit/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an
// encoded signature string to be persisted in CommitObj.Signature.
type CommitSigner func(payload []byte) (string, error)

// CommitTree creates a commit object for the given tree, with an
// optional parent (empty hash for a root commit), and returns its hash.
// Author and committer identity come from the repository config;
// timestamp and timezone from the wall clock.
func (r *Repo) CommitTree(tree, parent object.Hash, message string) (object.Hash, error) {
	return r.CommitTreeWithSigner(tree, parent, message, nil)
}

// CommitTreeWithSigner creates a commit and signs it when signer is
// provided.
func (r *Repo) CommitTreeWithSigner(tree, parent object.Hash, message string, signer CommitSigner) (object.Hash, error) {
	if !object.ValidHash(string(tree)) {
		return "", fmt.Errorf("commit: invalid tree hash %q", string(tree))
	}
	if parent != "" && !object.ValidHash(string(parent)) {
		return "", fmt.Errorf("commit: invalid parent hash %q", string(parent))
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	now := time.Now()
	ident := object.Ident{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  now.Unix(),
		TZ:    object.FormatTZ(now),
	}

	commitObj := &object.CommitObj{
		TreeHash:   tree,
		ParentHash: parent,
		Author:     ident,
		Committer:  ident,
		Message:    message,
	}
	if signer != nil {
		signature, err := signer(object.CommitSigningPayload(commitObj))
		if err != nil {
			return "", fmt.Errorf("commit: sign: %w", err)
		}
		commitObj.Signature = signature
	}

	h, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return h, nil
}

// LogEntry pairs a commit with its own hash for history display.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log walks the commit history starting from the given hash, following
// parent links, and returns the chain newest first. The walk stops at
// the root commit (no parent). A non-positive limit means no limit.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	current := start

	for current != "" {
		if limit > 0 && len(entries) >= limit {
			break
		}
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		entries = append(entries, LogEntry{Hash: current, Commit: c})
		current = c.ParentHash
	}

	return entries, nil
}
