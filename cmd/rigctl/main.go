package main

import (
	"os"

	"github.com/rigmate/rigmate/internal/rigctl"
)

func main() {
	if err := rigctl.Execute(); err != nil {
		os.Exit(1)
	}
}
