package main

import (
	"fmt"
	"os"

	"github.com/SAP-F-2025/career-orientation-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
