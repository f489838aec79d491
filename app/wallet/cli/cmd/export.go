package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full ledger snapshot",
	Run:   exportRun,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "File to write. Defaults to stdout.")
}

func exportRun(cmd *cobra.Command, args []string) {
	st, err := openEngine()
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(st.ExportSnapshot(), "", "  ")
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
