package main

import "github.com/pfrederiksen/mytime-ics/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
