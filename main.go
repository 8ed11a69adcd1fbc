package main

import (
	"fmt"
	"os"

	"github.com/difli/wxo-adk-on-colima/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wxo-adk: %v\n", err)
		os.Exit(1)
	}
}
