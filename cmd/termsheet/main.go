package main

import (
	"fmt"
	"os"

	"github.com/Dedsec0098/Termsheet-Validation/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
