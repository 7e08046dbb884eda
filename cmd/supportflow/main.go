package main

import (
	"os"

	"github.com/techflow/supportflow/cmd/supportflow/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
