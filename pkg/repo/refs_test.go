package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/grit/pkg/object"
)

// commitChain creates n commits on top of each other and returns their
// hashes, oldest first.
func commitChain(t *testing.T, r *Repo, n int) []object.Hash {
	t.Helper()
	var hashes []object.Hash
	parent := object.Hash("")
	for i := 0; i < n; i++ {
		writeWorkFile(t, r, "file.txt", []byte{byte('a' + i)}, 0o644)
		tree, err := r.WriteTree(r.RootDir)
		if err != nil {
			t.Fatalf("WriteTree: %v", err)
		}
		h, err := r.CommitTree(tree, parent, "commit")
		if err != nil {
			t.Fatalf("CommitTree: %v", err)
		}
		hashes = append(hashes, h)
		parent = h
	}
	return hashes
}

func TestUpdateRef_DirectAndResolve(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.UpdateRef("refs/heads/main", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}

	// Full name.
	h, err := r.ResolveRef("refs/heads/main")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if h != commits[0] {
		t.Errorf("ResolveRef = %q, want %q", h, commits[0])
	}

	// Branch shorthand.
	h, err = r.ResolveRef("main")
	if err != nil {
		t.Fatalf("ResolveRef shorthand: %v", err)
	}
	if h != commits[0] {
		t.Errorf("ResolveRef shorthand = %q, want %q", h, commits[0])
	}

	// HEAD is symbolic onto main.
	h, err = r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef HEAD: %v", err)
	}
	if h != commits[0] {
		t.Errorf("ResolveRef HEAD = %q, want %q", h, commits[0])
	}
}

func TestUpdateRef_RejectsMalformedHash(t *testing.T) {
	r := initRepo(t)

	// 38-char, upper-case, non-hex, and symbolic syntax without the
	// symbolic flag: all rejected before any file is written.
	bad := []string{
		"",
		"not-a-hash",
		"e69de29bb2d1d6434b8b29ae775ad8c2e48c53",
		"E69DE29BB2D1D6434B8B29AE775AD8C2E48C5391",
		"g69de29bb2d1d6434b8b29ae775ad8c2e48c5391",
		"ref: refs/heads/main",
	}
	for _, target := range bad {
		if err := r.UpdateRef("refs/heads/broken", target, false); err == nil {
			t.Errorf("UpdateRef(%q) succeeded, want error", target)
		}
	}

	// Nothing may have been written.
	if _, err := os.Stat(filepath.Join(r.GritDir, "refs", "heads", "broken")); !os.IsNotExist(err) {
		t.Error("rejected update still wrote a ref file")
	}
}

func TestResolveRef_Indirection(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.UpdateRef("refs/heads/release", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef direct: %v", err)
	}
	if err := r.UpdateRef("refs/stable", "refs/heads/release", true); err != nil {
		t.Fatalf("UpdateRef symbolic: %v", err)
	}

	h, err := r.ResolveRef("refs/stable")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if h != commits[0] {
		t.Errorf("ResolveRef through symref = %q, want %q", h, commits[0])
	}
}

func TestResolveRef_Missing(t *testing.T) {
	r := initRepo(t)

	h, err := r.ResolveRef("refs/heads/ghost")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if h != "" {
		t.Errorf("ResolveRef missing ref = %q, want empty", h)
	}
}

func TestResolveRef_CycleDetected(t *testing.T) {
	r := initRepo(t)

	if err := r.UpdateRef("refs/loop-a", "refs/loop-b", true); err != nil {
		t.Fatalf("UpdateRef a: %v", err)
	}
	if err := r.UpdateRef("refs/loop-b", "refs/loop-a", true); err != nil {
		t.Fatalf("UpdateRef b: %v", err)
	}

	_, err := r.ResolveRef("refs/loop-a")
	if !errors.Is(err, ErrRefCycle) {
		t.Errorf("ResolveRef cycle: err = %v, want ErrRefCycle", err)
	}
}

func TestUpdateRef_CreatesParentDirs(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.UpdateRef("refs/tags/nested/v1", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}
	assertFile(t, filepath.Join(r.GritDir, "refs", "tags", "nested", "v1"))
}

func TestRefFileFormat(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.UpdateRef("refs/heads/fmt", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(r.GritDir, "refs", "heads", "fmt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != string(commits[0])+"\n" {
		t.Errorf("ref file = %q, want hash + newline", data)
	}

	if err := r.UpdateRef("refs/heads/sym", "refs/heads/fmt", true); err != nil {
		t.Fatalf("UpdateRef symbolic: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(r.GritDir, "refs", "heads", "sym"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "ref: refs/heads/fmt\n" {
		t.Errorf("symbolic ref file = %q, want %q", data, "ref: refs/heads/fmt\n")
	}
}

func TestDetachedHEAD(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.UpdateRef("HEAD", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef HEAD: %v", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "" {
		t.Errorf("CurrentBranch detached = %q, want empty", branch)
	}

	h, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef HEAD: %v", err)
	}
	if h != commits[0] {
		t.Errorf("ResolveRef HEAD = %q, want %q", h, commits[0])
	}
}
