package matcher_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/numtide/htmlwalk/matcher"
	"github.com/numtide/htmlwalk/walk"
	"github.com/stretchr/testify/require"
)

// entries returns the root level entries of fsys, keyed by name.
func entries(t *testing.T, fsys fs.FS) map[string]fs.DirEntry {
	t.Helper()

	list, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)

	result := make(map[string]fs.DirEntry, len(list))
	for _, entry := range list {
		result[entry.Name()] = entry
	}

	return result
}

var fixture = fstest.MapFS{
	"a.html":        {Data: []byte("html")},
	"a.htm":         {Data: []byte("htm")},
	"a.HTML":        {Data: []byte("HTML")},
	"a.txt":         {Data: []byte("txt")},
	"page.xhtml":    {Data: []byte("xhtml")},
	"static.css":    {Data: []byte("css")},
	"docs.html/x":   {Data: []byte("x")},
	"_static/x.css": {Data: []byte("x")},
}

func TestSuffix(t *testing.T) {
	as := require.New(t)

	e := entries(t, fixture)
	match := matcher.Suffix(".html")

	as.Equal(matcher.Wanted, match("a.html", e["a.html"]))
	as.Equal(matcher.Indifferent, match("page.xhtml", e["page.xhtml"]))
	as.Equal(matcher.Indifferent, match("a.htm", e["a.htm"]))
	as.Equal(matcher.Indifferent, match("a.HTML", e["a.HTML"]))
	as.Equal(matcher.Indifferent, match("a.txt", e["a.txt"]))

	// directories are always wanted
	as.Equal(matcher.Wanted, match("_static", e["_static"]))
	as.Equal(matcher.Wanted, match("docs.html", e["docs.html"]))

	// multiple suffixes
	match = matcher.Suffix(".html", ".css")
	as.Equal(matcher.Wanted, match("static.css", e["static.css"]))
	as.Equal(matcher.Indifferent, match("a.txt", e["a.txt"]))

	// no suffixes wants everything
	match = matcher.Suffix()
	as.Equal(matcher.Wanted, match("a.txt", e["a.txt"]))
}

func TestGlob(t *testing.T) {
	as := require.New(t)

	e := entries(t, fixture)

	include, err := matcher.GlobInclusion([]string{"*.css", "a.h*"})
	as.NoError(err)
	as.Equal(matcher.Wanted, include("static.css", e["static.css"]))
	as.Equal(matcher.Wanted, include("a.htm", e["a.htm"]))
	as.Equal(matcher.Indifferent, include("a.txt", e["a.txt"]))

	exclude, err := matcher.GlobExclusion([]string{"_static", "*.txt"})
	as.NoError(err)
	as.Equal(matcher.Unwanted, exclude("_static", e["_static"]))
	as.Equal(matcher.Unwanted, exclude("a.txt", e["a.txt"]))
	as.Equal(matcher.Indifferent, exclude("a.html", e["a.html"]))

	// an empty list is indifferent to everything
	exclude, err = matcher.GlobExclusion(nil)
	as.NoError(err)
	as.Equal(matcher.Indifferent, exclude("a.txt", e["a.txt"]))
}

func TestCombine(t *testing.T) {
	as := require.New(t)

	e := entries(t, fixture)

	exclude, err := matcher.GlobExclusion([]string{"_static", "a.html"})
	as.NoError(err)

	match := matcher.Combine(
		[]matcher.MatchFn{matcher.Suffix(".html")},
		[]matcher.MatchFn{exclude},
	)

	// excludes win over includes
	as.Equal(matcher.Unwanted, match("a.html", e["a.html"]))
	as.Equal(matcher.Unwanted, match("_static", e["_static"]))

	as.Equal(matcher.Indifferent, match("page.xhtml", e["page.xhtml"]))
	as.Equal(matcher.Wanted, match("docs.html", e["docs.html"]))
	as.Equal(matcher.Indifferent, match("a.txt", e["a.txt"]))

	// nothing to consult
	as.Equal(matcher.Indifferent, matcher.Combine(nil, nil)("a.txt", e["a.txt"]))
}

func TestFilter(t *testing.T) {
	as := require.New(t)

	e := entries(t, fixture)

	exclude, err := matcher.GlobExclusion([]string{"_static", "a.txt"})
	as.NoError(err)

	filter := matcher.Filter(matcher.Combine(
		[]matcher.MatchFn{matcher.Suffix(".html")},
		[]matcher.MatchFn{exclude},
	))

	as.Equal(walk.Accept, filter("a.html", e["a.html"]))
	as.Equal(walk.Accept, filter("docs.html", e["docs.html"]))
	as.Equal(walk.Reject, filter("a.htm", e["a.htm"]))

	// excluded files are rejected, excluded directories are pruned
	as.Equal(walk.Reject, filter("a.txt", e["a.txt"]))
	as.Equal(walk.Prune, filter("_static", e["_static"]))
}
