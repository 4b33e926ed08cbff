package main

import "github.com/econclip/econclip/internal/cli"

func main() {
	cli.Main()
}
