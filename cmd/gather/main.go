package main

import "github.com/joshua-takyi/gather/cmd/gather/cmd"

func main() {
	cmd.Execute()
}
