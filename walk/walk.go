package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// State tracks a Walker through its single traversal.
type State int

const (
	NotStarted State = iota
	Enumerating
	Done
	RootMissing
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Enumerating:
		return "enumerating"
	case Done:
		return "done"
	case RootMissing:
		return "root_missing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrRootNotFound is reported when the root does not exist or is not a directory.
	ErrRootNotFound = errors.New("root does not exist")
	// ErrSubtreeUnreadable wraps the cause of a directory which could not be read during a walk.
	ErrSubtreeUnreadable = errors.New("subtree unreadable")
	// ErrConsumed is reported when a Walker's entries are iterated a second time.
	ErrConsumed = errors.New("walker has already been consumed")
)

// Decision is the outcome of applying a FilterFn to a directory entry.
type Decision int

const (
	// Accept emits the entry. Directories are descended.
	Accept Decision = iota
	// Reject suppresses the entry. Directories are still descended.
	Reject
	// Prune suppresses the entry and, for directories, everything beneath it.
	Prune
)

// FilterFn decides whether an entry should be emitted.
// relPath is the slash separated path of the entry relative to the walk root.
type FilterFn func(relPath string, entry fs.DirEntry) Decision

// Predicate adapts a plain predicate into a FilterFn, mapping true to Accept and false to Reject.
func Predicate(fn func(entry fs.DirEntry) bool) FilterFn {
	return func(_ string, entry fs.DirEntry) Decision {
		if fn(entry) {
			return Accept
		}

		return Reject
	}
}

func acceptAll(string, fs.DirEntry) Decision {
	return Accept
}

// Entry is a directory or file emitted by a Walker.
type Entry struct {
	// Dir is the containing directory, expressed relative to the walk root as it was configured.
	Dir string
	// Name is the base name of the entry.
	Name string
	// RelPath is the slash separated path of the entry relative to the walk root.
	RelPath string
	IsDir   bool
}

// Path returns the entry's full path, i.e. Dir joined with Name.
func (e Entry) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

func (e Entry) String() string {
	return e.Path()
}

// SkippedPath records a subtree which could not be read.
type SkippedPath struct {
	Path string
	Err  error
}

func (s SkippedPath) Error() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

func (s SkippedPath) Unwrap() error {
	return s.Err
}
