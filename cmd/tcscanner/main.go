package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/aleister1102/tcscanner/internal/orchestrator"
)

func main() {
	overrides, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(orchestrator.ExitClean)
		}
		fmt.Fprintf(os.Stderr, "tcscanner: %v\n", err)
		os.Exit(orchestrator.ExitConfiguration)
	}

	os.Exit(orchestrator.Run(overrides, os.Stdout, os.Stderr))
}
