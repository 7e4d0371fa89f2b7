package init

import (
	_ "embed"
	"fmt"
	"io"
	"os"
)

// We embed the sample toml file for use with the init flag.
//
//go:embed init.toml
var initBytes []byte

func Run(out io.Writer) error {
	if err := os.WriteFile("htmlwalk.toml", initBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write htmlwalk.toml: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Generated htmlwalk.toml. Now it's your turn to edit it.\n")

	return nil
}
