package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/export"
	"github.com/leadscout/leadscout/internal/store"
)

var (
	exportSector   string
	exportLocation string
	exportLimit    int
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored leads to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			Sector:   exportSector,
			Location: exportLocation,
			Limit:    exportLimit,
		})
		if err != nil {
			return err
		}

		switch filepath.Ext(exportOut) {
		case ".csv":
			err = export.WriteCSVFile(exportOut, leads)
		case ".xlsx":
			err = export.WriteXLSXFile(exportOut, leads)
		default:
			return eris.Errorf("unsupported output format: %s (use .csv or .xlsx)", exportOut)
		}
		if err != nil {
			return err
		}

		zap.L().Info("exported leads", zap.String("path", exportOut), zap.Int("leads", len(leads)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSector, "sector", "", "filter by sector")
	exportCmd.Flags().StringVar(&exportLocation, "location", "", "filter by location")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum rows (0 = all)")
	exportCmd.Flags().StringVar(&exportOut, "out", "leads.csv", "output file (.csv or .xlsx)")
	rootCmd.AddCommand(exportCmd)
}
