package main

import "github.com/hallgrim/blackbars/cmd"

func main() {
	cmd.Execute()
}
