package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/totegamma/iiifas/internal/infra/providers"
)

var outputFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every member of the collection as a single page to a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if outputFile != "" {
			conf.OutputFile = outputFile
		}

		root, err := conf.LocalRoot()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		eventStore, closeStore, err := providers.NewStore(ctx, conf)
		if err != nil {
			return err
		}
		defer closeStore()

		feed := providers.NewFeedUsecase(conf, eventStore)

		page, err := feed.Export(ctx, feed.ServiceBase(root))
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(conf.OutputFile, data, 0o644); err != nil {
			return err
		}

		slog.Info(
			"export written",
			slog.String("module", "main"),
			slog.String("file", conf.OutputFile),
			slog.Int("events", len(page.OrderedItems)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (overrides outputFile in the config)")
	rootCmd.AddCommand(exportCmd)
}
