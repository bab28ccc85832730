package main

import (
	"os"

	"github.com/GitDDAN/padel-palms-proposal/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
