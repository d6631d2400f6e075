package main

import "github.com/tessro/spin/internal/cli"

func main() {
	cli.Execute()
}
