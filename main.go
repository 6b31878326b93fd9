package main

import "github.com/theirongolddev/billdue/cmd"

func main() {
	cmd.Execute()
}
