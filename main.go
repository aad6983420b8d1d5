package main

import "github.com/itsmostafa/reduceindex/cmd"

func main() {
	cmd.Execute()
}
