// Package scan enumerates the regular files under a root directory.
package scan

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"syscall"

	"github.com/lexandro/filesubstrings/index"
)

// Filter is used by the walker to check if a path should be skipped.
type Filter interface {
	ShouldIgnoreDir(absolutePath string) bool
	ShouldIgnore(absolutePath string) bool
}

// Options configures a Walker.
type Options struct {
	RootDir string // empty means the current directory
	Filter  Filter // nil visits every file
}

// Walker performs a recursive, sequential traversal of one root directory.
// A Walker is not safe for concurrent use.
type Walker struct {
	rootDir string
	filter  Filter
	visited int
}

// NewWalker creates a walker for the given options.
func NewWalker(options Options) *Walker {
	return &Walker{
		rootDir: options.RootDir,
		filter:  options.Filter,
	}
}

// Visited returns the number of files yielded by the most recent iteration of Files.
func (w *Walker) Visited() int {
	return w.visited
}

// Files returns a lazy sequence of every regular file under the root, in lexical order.
// Each iteration starts a fresh traversal. A failure is yielded once as the final
// element with a nil file; the caller should treat the whole scan as failed.
func (w *Walker) Files() iter.Seq2[*index.FileRef, error] {
	return func(yield func(*index.FileRef, error) bool) {
		w.visited = 0

		absRoot, err := ResolveRoot(w.rootDir)
		if err != nil {
			yield(nil, err)
			return
		}

		stopped := false
		walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return classify(path, err)
			}
			if d.IsDir() {
				if path != absRoot && w.filter != nil && w.filter.ShouldIgnoreDir(path) {
					return filepath.SkipDir
				}
				return nil
			}

			file, err := w.fileRef(absRoot, path, d)
			if err != nil {
				return err
			}
			if file == nil {
				return nil
			}

			w.visited++
			if !yield(file, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if walkErr != nil && !stopped {
			yield(nil, walkErr)
		}
	}
}

// ResolveRoot validates a scan root and returns the absolute path the walker uses.
// An empty root means the current directory. Errors carry the root as the caller spelled it.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", classify(root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", classify(root, err)
	}
	if !info.IsDir() {
		return "", &PathError{Kind: KindPathNotFound, Path: root}
	}

	// WalkDir does not follow a symlinked root
	if linkInfo, err := os.Lstat(absRoot); err == nil && linkInfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(absRoot)
		if err != nil {
			return "", classify(root, err)
		}
		absRoot = resolved
	}

	return absRoot, nil
}

// fileRef builds the FileRef for a non-directory entry.
// It returns nil without error for entries that are skipped: filtered paths,
// non-regular files, dangling symlinks and files removed since the listing.
func (w *Walker) fileRef(absRoot string, path string, d fs.DirEntry) (*index.FileRef, error) {
	if w.filter != nil && w.filter.ShouldIgnore(path) {
		return nil, nil
	}

	var info fs.FileInfo
	var err error
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
		if err != nil && errors.Is(err, syscall.ELOOP) {
			return nil, nil
		}
	} else {
		info, err = d.Info()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, classify(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}

	relPath, err := filepath.Rel(absRoot, path)
	if err != nil {
		relPath = path
	}

	return &index.FileRef{
		Name:         d.Name(),
		Path:         path,
		RelativePath: filepath.ToSlash(relPath),
		SizeBytes:    info.Size(),
		ModTime:      info.ModTime(),
	}, nil
}
