package main

import "github.com/hashfinance/hashchat/cmd"

func main() {
	cmd.Execute()
}
