package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/dealboard/cmd"
	"github.com/thenoetrevino/dealboard/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cli.CommandError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCodeFor(err))
}
