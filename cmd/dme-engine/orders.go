// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dme-engine/internal/store"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List previously processed orders",
	Long: `Orders lists the most recent entries in the local order log, newest
first.`,
	RunE: runOrders,
}

func runOrders(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	orders, err := st.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := json.MarshalIndent(orders, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(orders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no orders recorded")
		return nil
	}
	for _, o := range orders {
		status := "pending"
		if o.Submitted {
			status = "submitted"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-12s  %-20s  %s\n",
			o.CreatedAt.Format("2006-01-02 15:04"), o.ID, o.Record.Device,
			o.Record.PatientName, status)
	}
	return nil
}

func init() {
	ordersCmd.Flags().Int("limit", 0, "maximum number of orders to list (default 20)")
	ordersCmd.Flags().Bool("json", false, "output orders as JSON")
	ordersCmd.Flags().String("data-dir", "", "directory for the order log database (default data/)")

	rootCmd.AddCommand(ordersCmd)
}
