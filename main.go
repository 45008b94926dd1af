package main

import (
	"os"

	"github.com/openuam/uamd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
