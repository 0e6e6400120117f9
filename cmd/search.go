package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/export"
)

var (
	searchSector    string
	searchLocation  string
	searchMax       int
	searchRefresh   bool
	searchCSVPath   string
	searchXLSXPath  string
	searchSkipStore bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find leads for a sector in a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if searchSector == "" || searchLocation == "" {
			return eris.New("--sector and --location are required")
		}

		svc, _, err := buildService()
		if err != nil {
			return err
		}

		leads, err := svc.Search(ctx, searchSector, searchLocation, searchMax, searchRefresh)
		if err != nil {
			return eris.Wrap(err, "search leads")
		}
		zap.L().Info("search complete",
			zap.String("sector", searchSector),
			zap.String("location", searchLocation),
			zap.Int("leads", len(leads)),
		)

		if !searchSkipStore {
			st, err := initMigratedStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.CreateSearch(ctx, searchSector, searchLocation, len(leads))
			if err != nil {
				return eris.Wrap(err, "record search")
			}
			if err := st.SaveLeads(ctx, run.ID, leads); err != nil {
				return eris.Wrap(err, "save leads")
			}
		}

		if searchCSVPath != "" {
			if err := export.WriteCSVFile(searchCSVPath, leads); err != nil {
				return err
			}
			zap.L().Info("wrote csv", zap.String("path", searchCSVPath))
		}
		if searchXLSXPath != "" {
			if err := export.WriteXLSXFile(searchXLSXPath, leads); err != nil {
				return err
			}
			zap.L().Info("wrote xlsx", zap.String("path", searchXLSXPath))
		}
		if searchCSVPath == "" && searchXLSXPath == "" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(leads)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSector, "sector", "", "business sector (e.g. Retail, Electronics)")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "city or area name")
	searchCmd.Flags().IntVar(&searchMax, "max-results", 100, "maximum leads to return (capped at 100)")
	searchCmd.Flags().BoolVar(&searchRefresh, "force-refresh", false, "bypass the result cache")
	searchCmd.Flags().StringVar(&searchCSVPath, "csv", "", "write results to a CSV file")
	searchCmd.Flags().StringVar(&searchXLSXPath, "xlsx", "", "write results to an XLSX file")
	searchCmd.Flags().BoolVar(&searchSkipStore, "no-store", false, "skip persisting results")
	rootCmd.AddCommand(searchCmd)
}
