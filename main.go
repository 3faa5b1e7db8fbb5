package main

import (
	"os"

	"github.com/socratai/socratai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
