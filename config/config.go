package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultRoot   = "./_build/html"
	DefaultSuffix = ".html"

	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidFormat = errors.New("format must be one of <text|json>")
	ErrEmptySuffix   = errors.New("suffixes must not contain empty strings")
)

// FileNames are searched for, in order, when no config file has been specified.
var FileNames = []string{"htmlwalk.toml", ".htmlwalk.toml"}

// Config holds the options for a single walk.
type Config struct {
	Root             string   `mapstructure:"root"        toml:"root,omitempty"`
	Suffixes         []string `mapstructure:"suffixes"    toml:"suffixes,omitempty"`
	Excludes         []string `mapstructure:"excludes"    toml:"excludes,omitempty"`
	Format           string   `mapstructure:"format"      toml:"format,omitempty"`
	Stats            bool     `mapstructure:"stats"       toml:"stats,omitempty"`
	Quiet            bool     `mapstructure:"quiet"       toml:"quiet,omitempty"`
	Verbose          uint8    `mapstructure:"verbose"     toml:"verbose,omitempty"`
	WorkingDirectory string   `mapstructure:"working-dir" toml:"-"`
}

// SetFlags appends our flags to the provided flag set.
// Flag names match the mapstructure tags in Config, and their defaults apply when neither the config file nor the
// environment provide a value.
func SetFlags(fs *pflag.FlagSet) {
	fs.StringP(
		"root", "r", DefaultRoot,
		"The directory to walk. A positional argument takes precedence. (env $HTMLWALK_ROOT)",
	)
	fs.StringSliceP(
		"suffixes", "s", []string{DefaultSuffix},
		"Only list files whose name ends with one of these suffixes. Directories are always listed. "+
			"(env $HTMLWALK_SUFFIXES)",
	)
	fs.StringSlice(
		"excludes", nil,
		"Exclude files or directories matching the specified globs. (env $HTMLWALK_EXCLUDES)",
	)
	fs.String(
		"format", FormatText,
		"Output format. Possible values are <text|json>. (env $HTMLWALK_FORMAT)",
	)
	fs.Bool(
		"stats", false,
		"Print traversal statistics after the listing. (env $HTMLWALK_STATS)",
	)
	fs.BoolP(
		"quiet", "q", false,
		"Only log errors. (env $HTMLWALK_QUIET)",
	)
	fs.CountP(
		"verbose", "v",
		"Set the verbosity of logs e.g. -vv. (env $HTMLWALK_VERBOSE)",
	)
	fs.StringP(
		"working-dir", "C", ".",
		"Run as if htmlwalk was started in the specified working directory instead of the current working "+
			"directory. (env $HTMLWALK_WORKING_DIR)",
	)
}

// NewViper creates a Viper instance pre-configured with the following options:
// * TOML config type
// * automatic env enabled
// * `HTMLWALK_` env prefix for environment variables
// * replacement of `-` and `.` with `_` when mapping flags to env e.g. `working-dir` => `HTMLWALK_WORKING_DIR`.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("toml")

	v.SetEnvPrefix("htmlwalk")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	return v
}

// FromViper takes a viper instance and produces a validated Config instance.
func FromViper(v *viper.Viper) (*Config, error) {
	// the working directory is a command line concern only
	if err := v.MergeConfigMap(map[string]any{"working-dir": "."}); err != nil {
		return nil, fmt.Errorf("failed to overwrite config values: %w", err)
	}

	var err error

	cfg := &Config{}

	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.WorkingDirectory, err = filepath.Abs(cfg.WorkingDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for working directory: %w", err)
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}

	if len(cfg.Suffixes) == 0 {
		cfg.Suffixes = []string{DefaultSuffix}
	}

	for _, suffix := range cfg.Suffixes {
		if suffix == "" {
			return nil, ErrEmptySuffix
		}
	}

	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	l := log.WithPrefix("config")
	l.Debugf("root = %s, suffixes = %v, excludes = %v", cfg.Root, cfg.Suffixes, cfg.Excludes)

	return cfg, nil
}

// Locate determines which config file to use, if any.
// An explicit path wins, followed by $HTMLWALK_CONFIG, a search upwards from searchDir and finally the XDG config
// directories. An empty path and no error means no config file was found.
func Locate(explicit string, searchDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if path := os.Getenv("HTMLWALK_CONFIG"); path != "" {
		return path, nil
	}

	if path, _, err := FindUp(searchDir, FileNames...); err == nil {
		return path, nil
	}

	if path, err := xdg.SearchConfigFile(filepath.Join("htmlwalk", FileNames[0])); err == nil {
		return path, nil
	}

	return "", nil
}

func FindUp(searchDir string, fileNames ...string) (path string, dir string, err error) {
	for _, dir := range eachDir(searchDir) {
		for _, f := range fileNames {
			path := filepath.Join(dir, f)
			if fileExists(path) {
				return path, dir, nil
			}
		}
	}

	return "", "", fmt.Errorf("could not find %s in %s", fileNames, searchDir)
}

func eachDir(path string) (paths []string) {
	path, err := filepath.Abs(path)
	if err != nil {
		return
	}

	paths = []string{path}

	if path == "/" {
		return
	}

	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == os.PathSeparator {
			path = path[:i]
			if path == "" {
				path = "/"
			}

			paths = append(paths, path)
		}
	}

	return
}

func fileExists(path string) bool {
	// Some broken filesystems like SSHFS return file information on stat() but
	// then cannot open the file. So we use os.Open.
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}
