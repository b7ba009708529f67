// Package main is the entry point for the jumpedia CLI tool.
package main

import (
	"os"

	"github.com/jumpedia/jumpedia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
