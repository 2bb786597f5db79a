package main

import (
	"fmt"
	"os"

	"github.com/ieee-sl/relief-ledger/cmd/columns"
	"github.com/ieee-sl/relief-ledger/cmd/export"
	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/cmd/serve"
	"github.com/ieee-sl/relief-ledger/cmd/stories"
	"github.com/ieee-sl/relief-ledger/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(stories.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(columns.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
