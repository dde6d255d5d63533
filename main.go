package main

import "github.com/rafters-ui/rafters/cmd"

func main() {
	cmd.Execute()
}
