// Command asstags parses, re-serializes and edits ASS override tags and
// karaoke timing.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/asstags/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "asstags:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
