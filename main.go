package main

import (
	"fmt"
	"os"

	"github.com/covstat/covstat/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "covstat:", err)
		os.Exit(1)
	}
}
