package main

import "github.com/they4kman/gobingo/cmd"

func main() {
	cmd.Execute()
}
