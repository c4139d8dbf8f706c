// Package main is the entry point for the depver CLI.
package main

import "depver.dev/pkg/depver/cmd"

func main() {
	cmd.Execute()
}
