package repo

import (
	"testing"
)

func TestBranch_CreateListDelete(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)
	if err := r.UpdateRef("refs/heads/main", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef main: %v", err)
	}

	if err := r.CreateBranch("feature", "HEAD"); err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("ListBranches: got %d branches, want 2", len(branches))
	}
	if branches[0] != "feature" || branches[1] != "main" {
		t.Errorf("branches = %v, want [feature main]", branches)
	}

	// The new branch points where HEAD pointed.
	h, err := r.ResolveRef("feature")
	if err != nil {
		t.Fatalf("ResolveRef(feature): %v", err)
	}
	if h != commits[0] {
		t.Errorf("feature = %q, want %q", h, commits[0])
	}

	if err := r.DeleteBranch("feature"); err != nil {
		t.Fatalf("DeleteBranch(feature): %v", err)
	}
	branches, err = r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches after delete: %v", err)
	}
	if len(branches) != 1 || branches[0] != "main" {
		t.Errorf("branches after delete = %v, want [main]", branches)
	}
}

func TestBranch_CreateFromHash(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 2)

	if err := r.CreateBranch("old", string(commits[0])); err != nil {
		t.Fatalf("CreateBranch from hash: %v", err)
	}
	h, err := r.ResolveRef("old")
	if err != nil {
		t.Fatalf("ResolveRef(old): %v", err)
	}
	if h != commits[0] {
		t.Errorf("old = %q, want %q", h, commits[0])
	}
}

func TestBranch_CreateUnresolvable_Error(t *testing.T) {
	r := initRepo(t)

	if err := r.CreateBranch("feature", "nowhere"); err == nil {
		t.Error("CreateBranch from unresolvable start point should fail")
	}
}

func TestBranch_CreateDuplicate_Error(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)

	if err := r.CreateBranch("dup", string(commits[0])); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateBranch("dup", string(commits[0])); err == nil {
		t.Error("duplicate CreateBranch should fail")
	}
}

func TestBranch_DeleteCurrent_Error(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)
	if err := r.UpdateRef("refs/heads/main", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef main: %v", err)
	}

	if err := r.DeleteBranch("main"); err == nil {
		t.Error("deleting the current branch should fail")
	}
}

func TestBranch_DeleteMissing_Error(t *testing.T) {
	r := initRepo(t)

	if err := r.DeleteBranch("ghost"); err == nil {
		t.Error("deleting a missing branch should fail")
	}
}

func TestCheckout_SwitchesHEAD(t *testing.T) {
	r := initRepo(t)
	commits := commitChain(t, r, 1)
	if err := r.UpdateRef("refs/heads/main", string(commits[0]), false); err != nil {
		t.Fatalf("UpdateRef main: %v", err)
	}
	if err := r.CreateBranch("feature", "HEAD"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	if err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "feature" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "feature")
	}

	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head != "refs/heads/feature" {
		t.Errorf("Head = %q, want %q", head, "refs/heads/feature")
	}
}

func TestCheckout_MissingBranch_Error(t *testing.T) {
	r := initRepo(t)

	if err := r.Checkout("nope"); err == nil {
		t.Error("Checkout of a missing branch should fail")
	}
}
