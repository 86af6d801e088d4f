package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/ocr"
)

var extractFullText bool

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract numeric candidates from a loan document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		if err := cfg.Validate("extract"); err != nil {
			return err
		}

		extractor, err := ocr.NewExtractor(cfg.OCR, cfg.CloudParse)
		if err != nil {
			return err
		}

		res, err := ocr.ExtractFile(ctx, extractor, path)
		if err != nil {
			return eris.Wrapf(err, "extract %s", path)
		}

		engine := extract.New(cfg.Engine)
		ex := engine.ExtractDocument(res.ByPage(cfg.Pages))

		zap.L().Info("extraction complete",
			zap.String("file", path),
			zap.Int("pages", len(ex.TextByPage)),
			zap.Int("candidates", ex.Candidates.Total()),
		)

		if !extractFullText {
			ex.FullText = ""
			ex.TextByPage = nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ex)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractFullText, "full-text", false, "include full document text in output")
	rootCmd.AddCommand(extractCmd)
}
