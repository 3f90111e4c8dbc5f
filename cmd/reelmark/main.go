// Command reelmark annotates videos with nested, categorized sections and
// bookmarks.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/reelmark/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
