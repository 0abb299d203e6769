package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/grit/pkg/object"
	"github.com/odvcencio/grit/pkg/repo"
	"golang.org/x/crypto/ssh"
)

// writeTestKey generates an ed25519 key pair and writes the private key
// in OpenSSH PEM format, returning its path.
func writeTestKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "grit test key")
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}

	keyPath := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(keyPath, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return keyPath
}

func TestSSHCommitSignerRoundTrip(t *testing.T) {
	keyPath := writeTestKey(t)

	signer, resolved, err := newSSHCommitSigner(keyPath)
	if err != nil {
		t.Fatalf("newSSHCommitSigner: %v", err)
	}
	if resolved != keyPath {
		t.Errorf("resolved key path = %q, want %q", resolved, keyPath)
	}

	payload := []byte("tree abc\nauthor x <x@y> 1 +0000\n\nmsg")
	signature, err := signer(payload)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	if !strings.HasPrefix(signature, commitSignaturePrefix+":") {
		t.Errorf("signature = %q, want %q prefix", signature, commitSignaturePrefix)
	}
	if strings.ContainsAny(signature, "\n ") {
		t.Error("signature must be a single token, it lives on one header line")
	}

	if err := verifyCommitSignature(signature, payload); err != nil {
		t.Errorf("verifyCommitSignature: %v", err)
	}

	if err := verifyCommitSignature(signature, []byte("tampered payload")); err == nil {
		t.Error("verification of a tampered payload should fail")
	}
}

func TestSignedCommitEndToEnd(t *testing.T) {
	keyPath := writeTestKey(t)

	r, err := repo.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(r.RootDir, "file.txt"), []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tree, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	signer, _, err := newSSHCommitSigner(keyPath)
	if err != nil {
		t.Fatalf("newSSHCommitSigner: %v", err)
	}
	h, err := r.CommitTreeWithSigner(tree, "", "signed commit", signer)
	if err != nil {
		t.Fatalf("CommitTreeWithSigner: %v", err)
	}

	commit, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if commit.Signature == "" {
		t.Fatal("commit is unsigned")
	}

	payload := object.CommitSigningPayload(commit)
	if err := verifyCommitSignature(commit.Signature, payload); err != nil {
		t.Errorf("stored commit signature does not verify: %v", err)
	}
}

func TestVerifyCommitSignatureRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"sshsig-v1",
		"wrong-prefix:ssh-ed25519:AAAA:BBBB",
		"sshsig-v1:ssh-ed25519:!!!:BBBB",
	}
	for _, signature := range cases {
		if err := verifyCommitSignature(signature, []byte("payload")); err == nil {
			t.Errorf("verifyCommitSignature(%q) succeeded, want error", signature)
		}
	}
}
