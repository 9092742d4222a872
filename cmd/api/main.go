package main

import (
	"os"

	"github.com/Dan9191/cashflow-dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
