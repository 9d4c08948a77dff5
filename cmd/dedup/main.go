package main

import (
	"os"

	"github.com/soyunomas/dedup/cmd/dedup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
