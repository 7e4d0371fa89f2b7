package stats_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/numtide/htmlwalk/stats"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	as := require.New(t)

	statz := stats.New()
	statz.Add(stats.Traversed, 4)
	statz.Add(stats.Directories, 1)
	statz.Add(stats.Files, 2)
	statz.Add(stats.Skipped, 1)

	var out bytes.Buffer
	statz.Print(&out)

	lines := strings.Split(out.String(), "\n")
	as.Len(lines, 6)
	as.Equal("traversed 4 entries", lines[0])
	as.Equal("listed 1 directories", lines[1])
	as.Equal("matched 2 files", lines[2])
	as.Equal("skipped 1 unreadable paths", lines[3])
	as.True(strings.HasPrefix(lines[4], "took "), lines[4])
	as.Empty(lines[5])
}

func TestTypeString(t *testing.T) {
	as := require.New(t)

	as.Equal("traversed", stats.Traversed.String())
	as.Equal("skipped", stats.Skipped.String())
	as.Equal("Type(9)", stats.Type(9).String())
}
