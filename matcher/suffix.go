package matcher

import (
	"io/fs"
	"strings"
)

// Suffix wants every directory and every file whose name ends with one of suffixes.
// Matching is case-sensitive. With no suffixes every file is wanted.
func Suffix(suffixes ...string) MatchFn {
	return func(_ string, entry fs.DirEntry) Result {
		if entry.IsDir() || len(suffixes) == 0 {
			return Wanted
		}

		name := entry.Name()
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				return Wanted
			}
		}

		return Indifferent
	}
}
