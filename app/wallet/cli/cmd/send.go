package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount float64
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send value to an address",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Wallet name to send from.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address to send to.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	tx, err := st.Send(from, to, amount)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("tx:", tx.TxID)
}
