package main

import (
	"os"

	"github.com/opendensity/density/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
