package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/goldstarcoin/ledger/foundation/ledger/mnemonic"
	"github.com/spf13/cobra"
)

var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Generate a new recovery phrase",
	Run:   mnemonicRun,
}

func init() {
	rootCmd.AddCommand(mnemonicCmd)
}

func mnemonicRun(cmd *cobra.Command, args []string) {
	words, err := mnemonic.Generate()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.Join(words, " "))
}
