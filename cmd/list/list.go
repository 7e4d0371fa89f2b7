package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/numtide/htmlwalk/config"
	"github.com/numtide/htmlwalk/matcher"
	"github.com/numtide/htmlwalk/stats"
	"github.com/numtide/htmlwalk/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type record struct {
	Dir   string `json:"dir"`
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

// Printer writes a single entry to the output.
type Printer func(entry walk.Entry) error

// NewPrinter returns the Printer for format, writing to out.
func NewPrinter(format string, out io.Writer) Printer {
	if format == config.FormatJSON {
		encoder := json.NewEncoder(out)

		return func(entry walk.Entry) error {
			return encoder.Encode(record{
				Dir:   entry.Dir,
				Name:  entry.Name,
				IsDir: entry.IsDir,
			})
		}
	}

	return func(entry walk.Entry) error {
		_, err := fmt.Fprintf(out, "dir: %s\nfile: %s\n", entry.Dir, entry.Name)

		return err
	}
}

// NewFilter builds the walk filter for cfg: global excludes are applied first, then the suffix filter.
func NewFilter(cfg *config.Config) (walk.FilterFn, error) {
	excludes, err := matcher.GlobExclusion(cfg.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile global excludes: %w", err)
	}

	return matcher.Filter(matcher.Combine(
		[]matcher.MatchFn{matcher.Suffix(cfg.Suffixes...)},
		[]matcher.MatchFn{excludes},
	)), nil
}

func Run(v *viper.Viper, statz *stats.Stats, cmd *cobra.Command) error {
	cmd.SilenceUsage = true

	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	filter, err := NewFilter(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printEntry := NewPrinter(cfg.Format, out)
	walker := walk.New(cfg.Root, filter, walk.WithStats(statz))

	for entry := range walker.Entries() {
		if err := printEntry(entry); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", entry, err)
		}
	}

	if err = walker.Err(); errors.Is(err, walk.ErrRootNotFound) {
		// not an error, there is simply nothing to list
		_, _ = fmt.Fprintf(out, "%s does not exist\n", cfg.Root)

		return nil
	} else if err != nil {
		return err
	}

	if skipped := walker.Skipped(); len(skipped) > 0 {
		log.Warnf("%d unreadable paths were skipped", len(skipped))
	}

	if cfg.Stats {
		statz.Print(out)
	}

	return nil
}
