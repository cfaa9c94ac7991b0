// Command arledger is the accounts-receivable ledger console.
package main

import (
	"fmt"
	"os"

	"psharma/arledger/cmd/classify"
	"psharma/arledger/cmd/contacts"
	"psharma/arledger/cmd/export"
	"psharma/arledger/cmd/ingest"
	"psharma/arledger/cmd/mark"
	"psharma/arledger/cmd/remind"
	"psharma/arledger/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(contacts.Cmd)
	root.Cmd.AddCommand(mark.Cmd)
	root.Cmd.AddCommand(remind.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
