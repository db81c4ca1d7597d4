package main

import "github.com/natanalt/hmm/cmd/hmm/cmd"

func main() {
	cmd.Execute()
}
