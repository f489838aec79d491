package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var outPath string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a restorable backup of a wallet",
	Run:   backupRun,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVarP(&walletName, "name", "n", "", "Wallet to back up.")
	backupCmd.Flags().StringVarP(&outPath, "out", "o", "", "File to write. Defaults to stdout.")
}

func backupRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	b, err := st.BackupWallet(walletName)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	if outPath == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(outPath, data, 0600); err != nil {
		log.Fatal(err)
	}
}
