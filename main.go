package main

import "github.com/goamponsah/AI-Math-Tutor/cmd"

func main() {
	cmd.Execute()
}
