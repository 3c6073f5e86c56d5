package main

import "github.com/ppimu/project-monitoring/cmd"

func main() {
	cmd.Execute()
}
