package main

import "github.com/joshdayorg/vibe-check/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
