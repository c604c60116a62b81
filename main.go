package main

import (
	"os"

	"github.com/lisquiz/lisquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
