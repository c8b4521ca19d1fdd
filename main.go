package main

import "gearsync/cmd"

func main() {
	cmd.Execute()
}
