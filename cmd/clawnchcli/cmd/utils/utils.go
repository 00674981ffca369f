package utils

import (
	"encoding/json"
	"fmt"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/spf13/viper"
	rpcc "github.com/ybbus/jsonrpc"

	"github.com/clawnch/ledger/ledger/types"
)

func colorize(s, style string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return ansi.Color(s, style)
}

func Error(msg string, args ...interface{}) {
	fmt.Print(colorize(fmt.Sprintf(msg, args...), "red+b"))
	os.Exit(1)
}

// Call invokes method on the configured endpoint and prints the result as
// indented JSON. what names the request in error messages.
func Call(what, method string, args interface{}) {
	client := rpcc.NewRPCClient(viper.GetString(CfgRemoteRPCEndpoint))

	res, err := client.Call(method, args)
	if err != nil {
		Error("Failed to %v: %v\n", what, err)
	}
	if res.Error != nil {
		Error("Failed to %v: %v (code %v)\n", what, res.Error.Message, res.Error.Code)
	}
	json, err := json.MarshalIndent(res.Result, "", "    ")
	if err != nil {
		Error("Failed to parse server response: %v\n%v\n", err, string(json))
	}
	fmt.Println(colorize(string(json), "green"))
}

// ParseAccountID parses a hex id given on the command line, exiting on failure.
func ParseAccountID(flag, value string) types.AccountID {
	if value == "" {
		return types.AccountID{}
	}
	id, err := types.HexToAccountID(value)
	if err != nil {
		Error("Invalid --%v: %v\n", flag, err)
	}
	return id
}
