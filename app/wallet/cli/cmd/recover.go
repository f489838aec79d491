package cmd

import (
	"fmt"
	"log"

	"github.com/goldstarcoin/ledger/foundation/ledger/mnemonic"
	"github.com/spf13/cobra"
)

var phrase string

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a wallet from its 12 word phrase",
	Run:   recoverRun,
}

func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.Flags().StringVarP(&walletName, "name", "n", "", "Name for the recovered wallet.")
	recoverCmd.Flags().StringVarP(&phrase, "words", "w", "", "Recovery phrase as 12 space separated words.")
}

func recoverRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	w, err := st.ImportWalletFromMnemonic(walletName, mnemonic.SplitPhrase(phrase), passphrase)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("name:   ", w.Name)
	fmt.Println("address:", w.Address)
}
