package main

import "github.com/mcpswag/mcpswag/cmd/mcpswag/pkg"

func main() {
	pkg.Execute()
}
