package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/grit/pkg/object"
)

// WriteTree snapshots a directory into the object store and returns the
// root tree hash. Hidden entries (names starting with ".") and the
// repository metadata directory are skipped; files become blobs with
// their mode derived from the owner execute bit; subdirectories
// recurse. A directory with no storable entries yields no tree object
// at all: the returned hash is "" and the directory simply does not
// appear in its parent. Entry order on disk is irrelevant — the codec
// sorts by name, so any iteration order hashes identically.
func (r *Repo) WriteTree(dir string) (object.Hash, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}

	var entries []object.TreeEntry
	for _, child := range children {
		name := child.Name()
		if strings.HasPrefix(name, ".") || name == r.DirName {
			continue
		}
		childPath := filepath.Join(dir, name)

		if child.IsDir() {
			subHash, err := r.WriteTree(childPath)
			if err != nil {
				return "", err
			}
			if subHash == "" {
				// Empty subtree: omit the entry entirely.
				continue
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeDir,
				Name: name,
				Hash: subHash,
			})
			continue
		}

		info, err := child.Info()
		if err != nil {
			return "", fmt.Errorf("write tree: stat %q: %w", childPath, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := os.ReadFile(childPath)
		if err != nil {
			return "", fmt.Errorf("write tree: read %q: %w", childPath, err)
		}
		blobHash, err := r.Store.WriteBlob(&object.Blob{Data: data})
		if err != nil {
			return "", fmt.Errorf("write tree: store %q: %w", childPath, err)
		}
		entries = append(entries, object.TreeEntry{
			Mode: modeFromFileInfo(info),
			Name: name,
			Hash: blobHash,
		})
	}

	if len(entries) == 0 {
		return "", nil
	}
	h, err := r.Store.WriteTree(&object.TreeObj{Entries: entries})
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}
	return h, nil
}

// ReadTree expands a stored tree into target, recreating subdirectories
// and writing blobs with 0644 or 0755 permission according to their
// recorded mode.
func (r *Repo) ReadTree(h object.Hash, target string) error {
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("read tree: mkdir %q: %w", target, err)
	}

	for _, entry := range tr.Entries {
		entryPath := filepath.Join(target, entry.Name)
		if entry.IsDir() {
			if err := r.ReadTree(entry.Hash, entryPath); err != nil {
				return err
			}
			continue
		}

		blob, err := r.Store.ReadBlob(entry.Hash)
		if err != nil {
			return fmt.Errorf("read tree: entry %q: %w", entry.Name, err)
		}
		if err := os.WriteFile(entryPath, blob.Data, filePermFromMode(entry.Mode)); err != nil {
			return fmt.Errorf("read tree: write %q: %w", entryPath, err)
		}
		// WriteFile perm is masked by umask; make the recorded mode stick.
		if err := os.Chmod(entryPath, filePermFromMode(entry.Mode)); err != nil {
			return fmt.Errorf("read tree: chmod %q: %w", entryPath, err)
		}
	}
	return nil
}

// ListTree returns the entries of a stored tree, sorted by name as they
// are on disk.
func (r *Repo) ListTree(h object.Hash) ([]object.TreeEntry, error) {
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}
	return tr.Entries, nil
}
