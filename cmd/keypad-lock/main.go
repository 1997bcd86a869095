package main

import "github.com/oshokin/keypad-lock/cmd/keypad-lock/cmd"

func main() {
	cmd.Execute()
}
