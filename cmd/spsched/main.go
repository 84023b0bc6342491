package main

import (
	"os"

	"github.com/solidpoint/spsched/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
