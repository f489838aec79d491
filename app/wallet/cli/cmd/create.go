package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var walletName string

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Run:   createRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&walletName, "name", "n", "", "Name for the new wallet.")
}

func createRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	w, err := st.CreateWallet(walletName, passphrase)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("name:   ", w.Name)
	fmt.Println("address:", w.Address)
}
