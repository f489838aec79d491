package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue new value to an address",
	Run:   issueRun,
}

func init() {
	rootCmd.AddCommand(issueCmd)
	issueCmd.Flags().StringVarP(&to, "to", "t", "", "Address to credit.")
	issueCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to issue.")
}

func issueRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	tx, err := st.Issue(to, amount)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("tx:", tx.TxID)
}
