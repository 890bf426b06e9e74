package main

import (
	"os"

	"github.com/kindelia-archive/Lambolt/cmd/lambolt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
