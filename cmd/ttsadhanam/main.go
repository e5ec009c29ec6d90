package main

import "github.com/dileepraotv/tt-sadhanam-sub000/internal/cli"

func main() {
	cli.Execute()
}
