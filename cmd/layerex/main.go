package main

import "github.com/codelayers/layerex/internal/cli"

func main() {
	cli.Execute()
}
