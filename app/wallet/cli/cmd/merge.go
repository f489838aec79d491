package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge an external snapshot into the ledger",
	Run:   mergeRun,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVarP(&inPath, "in", "i", "", "Snapshot file to merge.")
}

func mergeRun(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal(err)
	}

	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	if err := st.MergeExternal(data); err != nil {
		log.Fatal(err)
	}

	fmt.Println("snapshot merged")
}
