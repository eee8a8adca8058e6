package main

import "massbal/cmd/mbal/commands"

func main() {
	commands.Execute()
}
