// Command accountctl calls the account API from the shell and prints responses as JSON.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitWithError(os.Stderr, exitCode(err), err)
	}
}
