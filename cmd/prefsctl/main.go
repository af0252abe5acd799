// prefsctl is a CLI for viewing and changing user preferences
package main

import (
	"os"

	"github.com/iiroan/prefsctl/cmd/prefsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
