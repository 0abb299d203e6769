package repo

import (
	"github.com/odvcencio/grit/pkg/object"
)

// DefaultDirName is the conventional name of the repository metadata
// directory. It is only a default: Init and Open accept any name, and
// the chosen name flows into the store root and the tree-walk skip
// list.
const DefaultDirName = ".grit"

// Repo represents an opened grit repository.
type Repo struct {
	RootDir string        // working directory root
	GritDir string        // metadata directory (RootDir/DirName)
	DirName string        // base name of the metadata directory
	Store   *object.Store // content-addressed object store
}
