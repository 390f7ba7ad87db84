package main

import (
	"os"

	"github.com/shaheeralics/scriptwriter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
