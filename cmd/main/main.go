package main

import "deckcheck/cmd"

func main() {
	cmd.Execute()
}
