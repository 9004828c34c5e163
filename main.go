package main

import "github.com/streetlens/go-activity/cmd"

func main() {
	cmd.Execute()
}
