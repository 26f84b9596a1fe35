package main

import (
	"os"

	"github.com/rustyeddy/tsprep/cmd/tsprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
