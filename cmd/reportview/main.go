// Package main is the entry point for the reportview CLI tool.
package main

import (
	"mediareport/internal/cli"
)

func main() {
	cli.Execute()
}
