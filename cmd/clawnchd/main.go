package main

import "github.com/clawnch/ledger/cmd/clawnchd/cmd"

func main() {
	cmd.Execute()
}
