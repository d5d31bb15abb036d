package main

import (
	"os"

	"github.com/intelligrit/attraction-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
