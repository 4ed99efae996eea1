package main

import "github.com/oshokin/aifiles-notebook/cmd/aifiles-setup/cmd"

func main() {
	cmd.Execute()
}
