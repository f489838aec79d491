// Package cmd contains the wallet commands.
package cmd

import (
	"os"

	"github.com/goldstarcoin/ledger/foundation/ledger/snapshot"
	"github.com/goldstarcoin/ledger/foundation/ledger/state"
	"github.com/spf13/cobra"
)

var (
	snapshotPath string
	passphrase   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "zledger/snapshot.json", "Path to the snapshot file.")
	rootCmd.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "Passphrase protecting key material at rest.")
}

var rootCmd = &cobra.Command{
	Use:   "gsc",
	Short: "GoldStar Coin wallet",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openEngine brings the ledger engine up against the local snapshot file.
// The commands run the engine in process; there is no server to talk to.
func openEngine() (*state.State, error) {
	store, err := snapshot.NewDisk(snapshotPath)
	if err != nil {
		return nil, err
	}

	return state.New(state.Config{Store: store})
}
