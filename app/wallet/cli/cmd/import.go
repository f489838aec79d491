package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var privateKeyHex string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a wallet from a private key",
	Run:   importRun,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&walletName, "name", "n", "", "Name for the imported wallet.")
	importCmd.Flags().StringVarP(&privateKeyHex, "key", "k", "", "Private key as 64 hexadecimal characters.")
}

func importRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	w, err := st.ImportWalletFromKey(walletName, privateKeyHex, passphrase)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("name:   ", w.Name)
	fmt.Println("address:", w.Address)
}
