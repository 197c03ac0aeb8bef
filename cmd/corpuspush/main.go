package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/psantana5/corpuspush/cmd/corpuspush/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
