package main

import (
	"ecohspeech/cmd/a2t/cmd"
)

func main() {
	cmd.Execute()
}
