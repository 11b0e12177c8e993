package main

import "github.com/jonwyett/jw-ai-snapshot/internal/cli"

func main() {
	cli.Execute()
}
