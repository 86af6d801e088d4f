package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full pipeline for a loan document and print the analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := env.Store.CreateDocument(ctx, filepath.Base(path))
		if err != nil {
			return eris.Wrap(err, "create document")
		}

		analysis, err := env.Processor.Process(ctx, doc.ID, path)
		if err != nil {
			return eris.Wrapf(err, "analyze %s", path)
		}

		logAnalysis(doc, analysis)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	},
}

func logAnalysis(doc *model.Document, a *model.Analysis) {
	fields := []zap.Field{
		zap.String("document_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Int("red_flags", len(a.RedFlags)),
	}
	if a.Summary != nil {
		fields = append(fields,
			zap.String("source", a.Summary.Source),
			zap.Float64("total_loan", a.Summary.KeyNumbers.TotalLoan),
			zap.Float64("interest_rate", a.Summary.KeyNumbers.InterestRate),
		)
	}
	zap.L().Info("analysis complete", fields...)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
