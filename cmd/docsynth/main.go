package main

import "github.com/garyjia/docsynth/internal/cli"

func main() {
	cli.Execute()
}
