package main

import (
	"fmt"
	"os"

	"github.com/teranos/domgen/cmd/domgen/cmd"
	"github.com/teranos/domgen/logger"
)

func main() {
	defer logger.Cleanup()
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
