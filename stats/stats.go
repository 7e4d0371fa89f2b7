package stats

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

type Type int

const (
	Traversed Type = iota
	Directories
	Files
	Skipped
)

type Stats struct {
	start    time.Time
	counters map[Type]*atomic.Int32
}

func (s *Stats) Add(t Type, delta int) int {
	return int(s.counters[t].Add(int32(delta)))
}

func (s *Stats) Value(t Type) int {
	return int(s.counters[t].Load())
}

func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Print writes a summary of the walk to w.
func (s *Stats) Print(w io.Writer) {
	components := []string{
		"traversed %d entries",
		"listed %d directories",
		"matched %d files",
		"skipped %d unreadable paths",
		"took %v",
		"",
	}

	_, _ = fmt.Fprintf(
		w,
		strings.Join(components, "\n"),
		s.Value(Traversed),
		s.Value(Directories),
		s.Value(Files),
		s.Value(Skipped),
		s.Elapsed().Round(time.Millisecond),
	)
}

func New() Stats {
	counters := make(map[Type]*atomic.Int32)
	counters[Traversed] = &atomic.Int32{}
	counters[Directories] = &atomic.Int32{}
	counters[Files] = &atomic.Int32{}
	counters[Skipped] = &atomic.Int32{}

	return Stats{
		start:    time.Now(),
		counters: counters,
	}
}

func (t Type) String() string {
	switch t {
	case Traversed:
		return "traversed"
	case Directories:
		return "directories"
	case Files:
		return "files"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}
