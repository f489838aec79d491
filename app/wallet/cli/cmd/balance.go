package cmd

import (
	"fmt"
	"log"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var address string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance at an address.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&address, "address", "a", "", "Address to query.")
	balanceCmd.Flags().StringVarP(&walletName, "name", "n", "", "Wallet name to query instead of an address.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	addr := keys.Address(address)

	if walletName != "" {
		w, exists := st.WalletByName(walletName)
		if !exists {
			log.Fatalf("wallet %q not found", walletName)
		}
		addr = w.Address
	}

	fmt.Println("For Address:", addr)
	fmt.Println(signature.FormatDecimal(st.Balance(addr)))
}
