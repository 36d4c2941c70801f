package main

import "tutobot/internal/cli"

func main() {
	cli.Execute()
}
