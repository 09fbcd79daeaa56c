package main

import "github.com/mouse-blink/tqfuzz/cmd"

func main() {
	cmd.Execute()
}
