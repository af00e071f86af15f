// Package main is the entry point for the zipnest CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/zipnest/cmd/zipnest/commands"
	"github.com/thoreinstein/zipnest/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		os.Exit(errors.ExitSuccess)
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "zipnest: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "zipnest: %v\n", err)
	os.Exit(errors.ExitUser)
}
