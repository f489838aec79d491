package cmd

import (
	"fmt"
	"log"

	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every registered wallet",
	Run:   listRun,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range st.Wallets() {
		kind := "wallet"
		if w.IsObserver() {
			kind = "observer"
		}
		fmt.Printf("%-20s %s %12s %s\n", w.Name, w.Address, signature.FormatDecimal(w.CachedBalance), kind)
	}
}
