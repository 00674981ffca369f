package main

import "github.com/clawnch/ledger/cmd/clawnchcli/cmd"

func main() {
	cmd.Execute()
}
