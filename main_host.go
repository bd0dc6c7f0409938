//go:build !tinygo

package main

import "t219/internal/cli"

func main() {
	cli.Execute()
}
