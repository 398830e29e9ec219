package main

import "github.com/astral-cool/astral-web/internal/cli"

func main() {
	cli.Execute()
}
