package main

import "github.com/akolanti/rfqflow/internal/cli"

func main() {
	cli.Execute()
}
