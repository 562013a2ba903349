package main

import (
	"os"

	"europarl-tamv/cmd"
	"europarl-tamv/pkg/signals"
)

func main() {
	ctx := signals.SetupSignalHandler()
	if err := cmd.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
