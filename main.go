package main

import "github.com/chucky-1/cashflow/cmd"

func main() {
	cmd.Execute()
}
