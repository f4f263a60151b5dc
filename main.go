package main

import "github.com/findy-network/credat/cmd"

func main() {
	cmd.Execute()
}
