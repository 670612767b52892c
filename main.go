package main

import "slava0135/arraysum/cli"

func main() {
	cli.Execute()
}
