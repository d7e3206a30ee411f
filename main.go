package main

import "github.com/soocke/pixel-clicker-go/cmd"

func main() {
	cmd.Execute()
}
