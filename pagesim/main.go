// Package main runs the page replacement experiments of one policy on a trace
// read from the standard input.
package main

import "github.com/sarchlab/pagesim/pagesim/cmd"

func main() {
	cmd.Execute()
}
