package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
	"github.com/spf13/cobra"
)

var inPath string

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a wallet from a backup file",
	Run:   restoreRun,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().StringVarP(&inPath, "in", "i", "", "Backup file to restore from.")
}

func restoreRun(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal(err)
	}

	var b registry.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		log.Fatal(err)
	}

	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	w, err := st.RestoreWallet(b)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("name:   ", w.Name)
	fmt.Println("address:", w.Address)
}
