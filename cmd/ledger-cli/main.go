package main

import (
	"os"

	"github.com/zsmartex/coreledger/cmd/ledger-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
