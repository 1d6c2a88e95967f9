package main

import "brother-bridge/cmd"

func main() {
	cmd.Execute()
}
