package main

import "mikkoo/internal/cli"

func main() {
	cli.Execute()
}
