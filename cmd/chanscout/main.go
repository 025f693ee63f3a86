// Command chanscout discovers and ranks public Telegram communities.
package main

import (
	"fmt"
	"os"

	"github.com/chanscout/chanscout-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
