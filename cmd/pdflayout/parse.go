package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdflayout/export"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file.pdf>",
	Short: "Parse a PDF into reading-order Markdown, HTML, JSON or text",
	Long: `Parse a PDF and write its content in reading order.

Examples:
  # Markdown to stdout, images embedded as data URIs
  pdflayout parse report.pdf

  # HTML file with images written next to it
  pdflayout parse report.pdf --format html --output report.html --image-dir images

  # Joined paragraphs as plain text, no images
  pdflayout parse report.pdf --format text --join-paragraphs --extract-images=false`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("format", "f", "markdown", "output format (markdown, html, json, text)")
	parseCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	parseCmd.Flags().String("image-dir", "", "write images to this directory instead of embedding them")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	path := args[0]
	exportConfig := export.Config{
		Format:      cfg.ExportFormat(),
		Title:       path,
		PrettyPrint: true,
	}
	if cfg.ImageDir != "" {
		exportConfig.Images = export.DirSink(cfg.ImageDir)
	}

	var out io.Writer = cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	log.WithDocument(path).Infow("parsing", "format", exportConfig.Format.String())
	return newExtractor(cfg, log, path).ExportTo(commandContext(cmd), out, exportConfig)
}
