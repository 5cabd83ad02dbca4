// ABOUTME: Entry point for the storesync console
// ABOUTME: Terminal client for the StoreSync inventory management API

package main

import (
	"fmt"
	"os"

	"github.com/storesync/console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
