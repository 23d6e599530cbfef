package main

import "github.com/nikogura/resume-agent/cmd"

func main() {
	cmd.Execute()
}
