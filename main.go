package main

import "github.com/dr-neptune/ado-cli/cmd"

func main() {
	cmd.Execute()
}
