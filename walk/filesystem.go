package walk

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/numtide/htmlwalk/stats"
)

type Option func(w *Walker)

// WithFS walks fsys instead of os.DirFS(root). The root is then only used to label emitted entries.
func WithFS(fsys fs.FS) Option {
	return func(w *Walker) {
		w.fsys = fsys
	}
}

// WithStats records traversal counters into statz.
func WithStats(statz *stats.Stats) Option {
	return func(w *Walker) {
		w.statz = statz
	}
}

// Walker performs a single, lazy, depth-first traversal of a directory tree.
// Directories are emitted before their children. A Walker cannot be restarted; construct a new one to walk again.
type Walker struct {
	root   string
	fsys   fs.FS
	filter FilterFn
	statz  *stats.Stats
	log    *log.Logger

	state   State
	err     error
	skipped []SkippedPath
}

// New creates a Walker for root. A nil filter accepts every entry.
func New(root string, filter FilterFn, opts ...Option) *Walker {
	w := &Walker{
		root:   root,
		filter: filter,
		log:    log.WithPrefix("walk"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.fsys == nil {
		w.fsys = os.DirFS(root)
	}

	if w.filter == nil {
		w.filter = acceptAll
	}

	if w.statz == nil {
		statz := stats.New()
		w.statz = &statz
	}

	return w
}

func (w *Walker) Root() string {
	return w.root
}

func (w *Walker) State() State {
	return w.state
}

// Err returns the terminal error of the walk, if any.
// Unreadable subtrees are not terminal, see Skipped.
func (w *Walker) Err() error {
	return w.err
}

// Skipped returns the subtrees which could not be read, in the order they were encountered.
func (w *Walker) Skipped() []SkippedPath {
	return w.skipped
}

// Entries returns the lazy sequence of accepted entries.
// The sequence may only be consumed once. Breaking out of it early ends the traversal.
func (w *Walker) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if w.state != NotStarted {
			// keep the first terminal error
			if w.err == nil {
				w.err = ErrConsumed
			}

			return
		}

		info, err := fs.Stat(w.fsys, ".")
		if err != nil || !info.IsDir() {
			w.state = RootMissing
			w.err = fmt.Errorf("%w: %s", ErrRootNotFound, w.root)
			w.log.Debugf("root %s is not a directory: %v", w.root, err)

			return
		}

		w.state = Enumerating
		defer func() {
			w.state = Done
		}()

		// the callback only ever returns nil, fs.SkipDir or fs.SkipAll so the walk itself cannot fail
		_ = fs.WalkDir(w.fsys, ".", func(relPath string, d fs.DirEntry, err error) error {
			if err != nil {
				w.skip(relPath, err)

				if d != nil && d.IsDir() {
					return fs.SkipDir
				}

				return nil
			}

			// the root itself is never emitted
			if relPath == "." {
				return nil
			}

			w.statz.Add(stats.Traversed, 1)

			// d describes the link itself, entry what it points to
			entry := w.resolve(relPath, d)

			switch w.filter(relPath, entry) {
			case Prune:
				w.log.Debugf("pruned %s", relPath)

				if d.IsDir() {
					return fs.SkipDir
				}

				return nil
			case Reject:
				return nil
			case Accept:
			}

			if entry.IsDir() {
				w.statz.Add(stats.Directories, 1)
			} else {
				w.statz.Add(stats.Files, 1)
			}

			if !yield(w.entry(relPath, entry)) {
				return fs.SkipAll
			}

			return nil
		})
	}
}

// linkedDir is a symlink whose target is a directory.
// It is reported as a directory but never descended, links are not followed.
type linkedDir struct {
	fs.DirEntry
}

func (linkedDir) IsDir() bool {
	return true
}

func (linkedDir) Type() fs.FileMode {
	return fs.ModeDir | fs.ModeSymlink
}

func (w *Walker) resolve(relPath string, d fs.DirEntry) fs.DirEntry {
	if d.Type()&fs.ModeSymlink == 0 {
		return d
	}

	info, err := fs.Stat(w.fsys, relPath)
	if err != nil {
		w.log.Debugf("failed to resolve symlink %s: %v", relPath, err)

		return d
	}

	if info.IsDir() {
		return linkedDir{d}
	}

	return d
}

func (w *Walker) entry(relPath string, d fs.DirEntry) Entry {
	return Entry{
		Dir:     filepath.Join(w.root, filepath.FromSlash(path.Dir(relPath))),
		Name:    d.Name(),
		RelPath: relPath,
		IsDir:   d.IsDir(),
	}
}

func (w *Walker) skip(relPath string, cause error) {
	skipped := SkippedPath{
		Path: filepath.Join(w.root, filepath.FromSlash(relPath)),
		Err:  fmt.Errorf("%w: %w", ErrSubtreeUnreadable, cause),
	}

	w.skipped = append(w.skipped, skipped)
	w.statz.Add(stats.Skipped, 1)
	w.log.Warnf("skipping %s", skipped)
}
