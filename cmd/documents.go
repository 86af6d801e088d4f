package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/store"
)

var (
	documentsStatus string
	documentsLimit  int
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		docs, err := st.ListDocuments(ctx, store.DocumentFilter{
			Status: model.DocumentStatus(documentsStatus),
			Limit:  documentsLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	},
}

func init() {
	documentsCmd.Flags().StringVar(&documentsStatus, "status", "", "filter by status (processing, complete, failed)")
	documentsCmd.Flags().IntVar(&documentsLimit, "limit", 50, "maximum documents to list")
	rootCmd.AddCommand(documentsCmd)
}
