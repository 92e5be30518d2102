// Command objmacro inserts per-object macro calls into slicer G-code and
// writes one firmware macro file per object.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/objmacro/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
