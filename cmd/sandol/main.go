package main

import (
	"fmt"
	"os"

	"github.com/tillberg/autorestart"

	"github.com/sandol-bot/sandol/internal/cli"
)

func main() {
	// Restart when the binary is rebuilt, for local development.
	if os.Getenv("SANDOL_AUTORESTART") == "1" {
		go autorestart.RestartOnChange()
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
