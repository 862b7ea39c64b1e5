package main

import "github.com/relayrun/relay/cmd"

func main() {
	cmd.Execute()
}
