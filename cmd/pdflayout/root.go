package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdflayout"
	"github.com/tsawler/pdflayout/internal/config"
	"github.com/tsawler/pdflayout/internal/logger"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/mupdf"
)

var (
	cfgFile string
	envFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pdflayout",
	Short: "Reconstruct the reading order of PDF documents",
	Long: `pdflayout extracts text lines and images from PDF pages and merges
them into a single reading-order sequence with paragraph breaks.

Images are cropped from pages rendered with MuPDF (mutool), which must be
installed or named with $MUPDF_BIN.

Configuration precedence: flags > PDFLAYOUT_* environment variables >
config file > defaults. A .env file in the working directory is loaded first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := pdflayout.DefaultOptions()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("mupdf-bin", "", "mutool binary (default $MUPDF_BIN, then PATH)")

	flags.Float64("paragraph-threshold", defaults.ParagraphThreshold, "vertical gap in points that starts a new paragraph")
	flags.Float64("line-threshold", defaults.LineThreshold, "vertical tolerance in points for runs on one line")
	flags.Float64("image-scale", defaults.ImageScale, "render scale used to crop images")
	flags.Bool("extract-images", defaults.ExtractImages, "extract images")
	flags.Bool("ignore-empty-text", defaults.IgnoreEmptyText, "drop whitespace-only text runs")
	flags.Bool("join-paragraphs", defaults.JoinParagraphs, "merge the lines of each paragraph")
	flags.String("image-format", defaults.ImageOutputFormat, "image encoding (png, jpeg, gif, bmp, tiff)")
	flags.Int("concurrency", defaults.Concurrency, "pages processed at once (0 = unlimited)")
	flags.Bool("ocr", defaults.OCRImages, "recognize text in images (requires a build with -tags ocr)")
	flags.String("ocr-language", defaults.OCRLanguage, "Tesseract language(s), e.g. eng+fra")
	flags.Int("ocr-page-seg-mode", defaults.OCRPageSegMode, "Tesseract page segmentation mode (0-13)")
}

// setup loads configuration and creates the logger shared by subcommands.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile, envFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}

// newExtractor builds the extractor for path from the configuration.
func newExtractor(cfg *config.Config, log *logger.Logger, path string) *pdflayout.Extractor {
	docLog := log.WithDocument(path)

	ext := pdflayout.Open(path).
		WithOptions(cfg.Options).
		WithLogger(docLog.Zap()).
		WithObserver(pdflayout.ObserverFuncs{
			Page: func(p model.PageResult) {
				docLog.Debugw("page done",
					"page", p.Index,
					"lines", len(p.TextElements),
					"images", len(p.ImageElements),
				)
			},
			Done: func(n int) {
				docLog.Infow("document parsed", "pages", n)
			},
		})

	if cfg.MuPDFBin != "" {
		ext = ext.WithRasterizer(mupdf.New(path,
			mupdf.WithBinary(cfg.MuPDFBin),
			mupdf.WithLogger(docLog.Zap()),
		))
	}
	return ext
}

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
