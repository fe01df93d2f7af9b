package main

import "github.com/takakv/cyclic/cli"

func main() {
	cli.Execute()
}
