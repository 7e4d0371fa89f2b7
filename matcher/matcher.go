package matcher

import (
	"io/fs"

	"github.com/numtide/htmlwalk/walk"
)

type Result int

const (
	// Entry explicitly selected.
	Wanted Result = iota
	// Entry explicitly rejected.
	Unwanted
	// Entry neither selected nor rejected.
	Indifferent
)

type MatchFn = func(relPath string, entry fs.DirEntry) Result

func invert(match MatchFn) MatchFn {
	return func(relPath string, entry fs.DirEntry) Result {
		switch result := match(relPath, entry); result {
		case Wanted:
			return Unwanted
		case Unwanted:
			return Wanted
		default:
			return result
		}
	}
}

// Combine combines multiple matchers into a single matcher.
// The order of the matchers is important, which is why have explicit parameters for includes and excludes.
func Combine(includes []MatchFn, excludes []MatchFn) MatchFn {
	// Combine the matchers, ensuring exclusions are applied first.
	// This ensures that an entry is rejected if it matches any of the excludes, even if it matches an include.
	matchers := make([]MatchFn, 0, len(excludes)+len(includes))
	matchers = append(matchers, excludes...)
	matchers = append(matchers, includes...)

	return func(relPath string, entry fs.DirEntry) Result {
		for _, matchFn := range matchers {
			switch result := matchFn(relPath, entry); result {
			case Wanted, Unwanted:
				return result
			case Indifferent:
			}
		}

		// Default to "don't care."
		return Indifferent
	}
}

// Filter converts a matcher into a walk.FilterFn.
// Wanted entries are emitted, unwanted directories are pruned and anything else is skipped without pruning.
func Filter(match MatchFn) walk.FilterFn {
	return func(relPath string, entry fs.DirEntry) walk.Decision {
		switch match(relPath, entry) {
		case Wanted:
			return walk.Accept
		case Unwanted:
			if entry.IsDir() {
				return walk.Prune
			}

			return walk.Reject
		case Indifferent:
		}

		return walk.Reject
	}
}
