package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadscout/leadscout/internal/store"
)

var (
	leadsSector   string
	leadsLocation string
	leadsLimit    int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect stored leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored leads, highest score first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			Sector:   leadsSector,
			Location: leadsLocation,
			Limit:    leadsLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	},
}

var leadsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one lead by place id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		lead, err := st.GetLead(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lead)
	},
}

var leadsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent search runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListSearches(ctx, leadsLimit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	},
}

func init() {
	leadsCmd.PersistentFlags().StringVar(&leadsSector, "sector", "", "filter by sector")
	leadsCmd.PersistentFlags().StringVar(&leadsLocation, "location", "", "filter by location")
	leadsCmd.PersistentFlags().IntVar(&leadsLimit, "limit", 50, "maximum rows")
	leadsCmd.AddCommand(leadsListCmd, leadsGetCmd, leadsRunsCmd)
	rootCmd.AddCommand(leadsCmd)
}
