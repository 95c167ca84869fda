package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// rawCmd represents the raw command
var rawCmd = &cobra.Command{
	Use:   "raw <file.pdf>",
	Short: "Print the per-page lines and images as JSON",
	Long: `Process every page without merging them and print the page results:
page size, text lines with their positions, and image regions with their
encoded pixels.`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	pages, err := newExtractor(cfg, log, args[0]).ParseRaw(commandContext(cmd))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}
