package main

import "github.com/ellavondegurechaff/cakeclaim/cmd"

func main() {
	cmd.Execute()
}
