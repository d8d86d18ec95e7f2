package main

import (
	"os"

	"github.com/ssupark/oratio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
