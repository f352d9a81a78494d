package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"lvr-ingest/internal"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lvr-ingest",
		Short: "Ingests government real-estate transaction disclosures",
	}
	root.AddCommand(ingestCmd(), serveCmd())
	return root
}

func ingestCmd() *cobra.Command {
	var (
		season  string
		year    int
		quarter int
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion pass for a reporting period",
		Long: `Fetches every region's quarterly CSV export, normalizes the rows and
persists them with duplicate suppression. Without flags the latest closed
period is ingested. Safe to re-run for the same period.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := internal.NewApp()
			if err != nil {
				return err
			}
			defer application.Close()

			inserted, err := application.RunIngest(cmd.Context(), season, year, quarter)
			if err != nil {
				return err
			}
			fmt.Printf("inserted %d new records\n", inserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&season, "season", "", `explicit period, e.g. "114S1"`)
	cmd.Flags().IntVar(&year, "year", 0, "local calendar year (1-200)")
	cmd.Flags().IntVar(&quarter, "quarter", 0, "quarter (1-4)")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only reporting API",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := internal.NewApp()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.RunServer(); err != nil {
				log.Printf("server stopped: %v", err)
				return err
			}
			return nil
		},
	}
}
