// Package main is the examgen command line tool for building vocabulary
// review exams offline.
package main

import (
	"os"

	"github.com/phrazzld/vocaexam/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
