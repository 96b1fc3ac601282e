package main

import "infla/cmd"

func main() {
	cmd.Execute()
}
