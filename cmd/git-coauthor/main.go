// main is the entrypoint of the git-coauthor CLI; the directory name makes
// "go install" produce a binary git can run as "git coauthor".
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/coauthor/cmd"
	"github.com/huangsam/coauthor/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseJournal()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
