package main

import (
	"os"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
