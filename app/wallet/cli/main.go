// This program provides a command line wallet over the local ledger engine.
package main

import "github.com/goldstarcoin/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
