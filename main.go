package main

import (
	"fmt"

	"svplan/experiments"
)

// main entry point to all the experiments
func main() {
	rootCommand := experiments.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
