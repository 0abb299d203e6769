package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/grit/pkg/object"
)

// Init creates a new grit repository at path using the default metadata
// directory name.
func Init(path string) (*Repo, error) {
	return InitDir(path, DefaultDirName)
}

// InitDir creates a new grit repository at path with an explicit
// metadata directory name. It creates the directory structure —
// objects/ and refs/heads/ — and writes a symbolic HEAD pointing at
// refs/heads/main. Returns an error if the metadata directory already
// exists.
func InitDir(path, dirName string) (*Repo, error) {
	gritDir := filepath.Join(path, dirName)

	if _, err := os.Stat(gritDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", gritDir)
	}

	dirs := []string{
		filepath.Join(gritDir, "objects"),
		filepath.Join(gritDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gritDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	return &Repo{
		RootDir: path,
		GritDir: gritDir,
		DirName: dirName,
		Store:   object.NewStore(gritDir),
	}, nil
}

// Open searches upward from path for a default-named metadata directory
// and opens the repository.
func Open(path string) (*Repo, error) {
	return OpenDir(path, DefaultDirName)
}

// OpenDir searches upward from path for the named metadata directory
// and opens the repository. Returns an error if none is found.
func OpenDir(path, dirName string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gritDir := filepath.Join(cur, dirName)
		info, err := os.Stat(gritDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				GritDir: gritDir,
				DirName: dirName,
				Store:   object.NewStore(gritDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a grit repository (or any parent up to /)")
		}
		cur = parent
	}
}

// Head reads HEAD. If the content starts with "ref: ", it returns the
// ref path (e.g. "refs/heads/main"). Otherwise it returns the raw
// content as a detached hash string.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GritDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if strings.HasPrefix(content, symbolicPrefix) {
		return strings.TrimPrefix(content, symbolicPrefix), nil
	}
	return content, nil
}
