package main

import (
	"os"

	"OptionSentinel/cmd/sentinel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
