// Package main is the entry point for the realty CLI and site server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/evcraddock/realty-site/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
