package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

// Local is a storage backend on a filesystem.
type Local struct {
	fs billy.Filesystem
}

// NewLocal creates a storage backend rooted at the given directory.
func NewLocal(root string) *Local {
	return &Local{fs: osfs.New(root)}
}

// NewLocalFS creates a storage backend on the given filesystem.
func NewLocalFS(fs billy.Filesystem) *Local {
	return &Local{fs: fs}
}

// Read returns the bytes of the file
func (l *Local) Read(_ context.Context, p string) ([]byte, error) {
	f, err := l.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, p)
		}
		return nil, errors.Wrapf(err, "open %s", p)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	return data, errors.Wrapf(err, "read %s", p)
}

// Write writes the file, creating its parent directories
func (l *Local) Write(_ context.Context, p string, data []byte) error {
	if dir := path.Dir(p); dir != "." {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	return errors.Wrapf(util.WriteFile(l.fs, p, data, 0o644), "write %s", p)
}

// List lists the files under prefix
func (l *Local) List(_ context.Context, prefix string) ([]string, error) {
	var paths []string
	if err := l.walk("/", func(p string) {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}); err != nil {
		return nil, errors.Wrapf(err, "list files of %s", prefix)
	}
	sort.Strings(paths)
	return paths, nil
}

func (l *Local) walk(dir string, fn func(p string)) error {
	infos, err := l.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, info := range infos {
		p := l.fs.Join(dir, info.Name())
		if info.IsDir() {
			if err := l.walk(p, fn); err != nil {
				return err
			}
			continue
		}
		fn(strings.TrimPrefix(filepath.ToSlash(p), "/"))
	}
	return nil
}
