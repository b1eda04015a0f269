// Package main provides the mtreps CLI application.
package main

import "github.com/gnames/mtreps/cmd"

func main() {
	cmd.Execute()
}
