package main

import "github.com/example/farmhouse/cmd"

func main() {
	cmd.Execute()
}
