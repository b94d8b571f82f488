// Package main is the entry point for the mutapath CLI.
package main

import "mutapath.dev/pkg/mutapath/cmd"

func main() {
	cmd.Execute()
}
