// Package main implements the vocaexam HTTP server, which builds printable
// vocabulary review exams from a word list dataset.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
