package matcher

import (
	"fmt"
	"io/fs"

	"github.com/gobwas/glob"
)

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, len(patterns))

	for i, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile glob pattern '%v': %w", pattern, err)
		}

		globs[i] = g
	}

	return globs, nil
}

// GlobInclusion wants entries whose path relative to the walk root matches any of patterns.
func GlobInclusion(patterns []string) (MatchFn, error) {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return nil, err
	}

	return func(relPath string, _ fs.DirEntry) Result {
		for _, g := range globs {
			if g.Match(relPath) {
				return Wanted
			}
		}

		return Indifferent
	}, nil
}

// GlobExclusion rejects entries whose path relative to the walk root matches any of patterns.
func GlobExclusion(patterns []string) (MatchFn, error) {
	include, err := GlobInclusion(patterns)
	if err != nil {
		return nil, err
	}

	return invert(include), nil
}
