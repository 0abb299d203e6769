package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode constants matching Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object: a named child with its mode
// and the hash of the blob or subtree it points at.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry refers to a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir
}

// TreeObj holds a list of tree entries. Entries are sorted by Name when
// serialized; in-memory order is not significant.
type TreeObj struct {
	Entries []TreeEntry
}

// Ident is an author or committer identity with its timestamp and
// timezone offset in the signed HHMM format (e.g. "+0200", "-0730").
type Ident struct {
	Name  string
	Email string
	When  int64
	TZ    string
}

// CommitObj represents a commit pointing to a tree with metadata.
// ParentHash is empty for root commits; a commit has at most one parent.
type CommitObj struct {
	TreeHash   Hash
	ParentHash Hash
	Author     Ident
	Committer  Ident
	Signature  string
	Message    string
}
