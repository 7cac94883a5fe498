// Command tcm manages manually tracked test cases in a local SQLite database.
package main

import (
	"context"
	"os"

	"github.com/mesh-intelligence/tcm/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
