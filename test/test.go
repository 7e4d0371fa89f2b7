package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/numtide/htmlwalk/config"
	cp "github.com/otiai10/copy"
	"github.com/stretchr/testify/require"
)

// ExamplesPaths lists, in walk order, the relative paths emitted for test/examples with the default suffix filter.
var ExamplesPaths = []string{
	"_static",
	"_static/theme.html",
	"about.html",
	"assets",
	"case",
	"case/a.html",
	"index.html",
	"notes",
	"notes/deep",
	"notes/deep/nested",
	"notes/deep/nested/page.html",
	"notes/readme.html",
}

// ExamplesEntryCount is the number of entries beneath test/examples, regardless of any filter.
const ExamplesEntryCount = 18

func WriteConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create a new config file: %v", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err = encoder.Encode(cfg); err != nil {
		t.Fatalf("failed to write to config file: %v", err)
	}
}

func TempExamples(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	TempExamplesInDir(t, tempDir)

	return tempDir
}

func TempExamplesInDir(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, cp.Copy("../test/examples", dir), "failed to copy test data to dir")
}

func TempFile(t *testing.T, dir string, pattern string, contents *string) *os.File {
	t.Helper()

	file, err := os.CreateTemp(dir, pattern)
	require.NoError(t, err, "failed to create temp file")

	if contents == nil {
		return file
	}

	_, err = file.WriteString(*contents)
	require.NoError(t, err, "failed to write contents to temp file")
	require.NoError(t, file.Close(), "failed to close temp file")

	file, err = os.Open(file.Name())
	require.NoError(t, err, "failed to open temp file")

	return file
}

// ChangeWorkDir changes the current working directory for the duration of the test.
// The original directory is restored when the test ends.
func ChangeWorkDir(t *testing.T, dir string) {
	t.Helper()

	// capture current cwd, so we can replace it after the test is finished
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(fmt.Errorf("failed to get current working directory: %w", err))
	}

	t.Cleanup(func() {
		// return to the previous working directory
		if err := os.Chdir(cwd); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})

	// change to the new directory
	if err := os.Chdir(dir); err != nil {
		t.Fatal(fmt.Errorf("failed to change working directory: %w", err))
	}
}
