package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// MarshalTree serializes a TreeObj into the binary tree format. Entries
// are sorted by Name first: the sort order is part of the
// content-addressing contract, so two trees with the same entries hash
// identically regardless of the order they were collected in. Each
// entry is encoded as
//
//	"<mode> <name>\x00" + 20 raw digest bytes
//
// with no separator between entries.
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		if !validTreeMode(e.Mode) {
			return nil, fmt.Errorf("marshal tree: unknown mode %q for entry %q", e.Mode, e.Name)
		}
		if e.Name == "" || strings.ContainsAny(e.Name, "/\x00") {
			return nil, fmt.Errorf("marshal tree: invalid entry name %q", e.Name)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("marshal tree: entry %q: %w", e.Name, err)
		}
		fmt.Fprintf(&buf, "%s %s\x00", e.Mode, e.Name)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses the binary tree format. The scan is strict: each
// record must consist of a NUL-terminated "<mode> <name>" header
// followed by exactly 20 raw digest bytes, and any malformed record
// aborts the parse.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	offset := 0
	for offset < len(data) {
		nulIdx := bytes.IndexByte(data[offset:], 0)
		if nulIdx < 0 {
			return nil, fmt.Errorf("parse tree: unterminated entry header at offset %d", offset)
		}
		header := string(data[offset : offset+nulIdx])
		mode, name, ok := strings.Cut(header, " ")
		if !ok {
			return nil, fmt.Errorf("parse tree: malformed entry header %q", header)
		}
		if !validTreeMode(mode) {
			return nil, fmt.Errorf("parse tree: unknown mode %q for entry %q", mode, name)
		}
		if name == "" {
			return nil, fmt.Errorf("parse tree: empty entry name at offset %d", offset)
		}

		hashStart := offset + nulIdx + 1
		if hashStart+RawHashLen > len(data) {
			return nil, fmt.Errorf("parse tree: truncated hash for entry %q", name)
		}
		raw := data[hashStart : hashStart+RawHashLen]

		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: mode,
			Name: name,
			Hash: Hash(hex.EncodeToString(raw)),
		})
		offset = hashStart + RawHashLen
	}
	return tr, nil
}

func validTreeMode(mode string) bool {
	switch mode {
	case TreeModeDir, TreeModeFile, TreeModeExecutable:
		return true
	}
	return false
}
