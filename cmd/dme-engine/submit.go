// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dme-engine/internal/parse"
	"github.com/pdiddy/dme-engine/internal/store"
	"github.com/pdiddy/dme-engine/internal/submit"
)

var submitCmd = &cobra.Command{
	Use:   "submit [note-file]",
	Short: "Parse a note, deliver the order, and record it locally",
	Long: `Submit parses the note, POSTs the resulting order record to the configured
endpoint, and records the outcome in the local order log. With --dry-run the
POST is skipped and the record is only logged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	note, err := readNote(cmd, args)
	if err != nil {
		return err
	}

	parser := parse.NewParser(parserConfig(cmd))
	rec, warnings, err := parser.Parse(note)
	if err != nil {
		return err
	}
	printWarnings(warnings)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	submitted := false
	if !dryRun {
		cfg := submitConfig(cmd)
		if cfg.Endpoint == "" {
			return fmt.Errorf("%w: submit endpoint not configured (set submit.endpoint or --endpoint)", errConfig)
		}
		if err := submit.NewHTTPSubmitter(cfg).Submit(cmd.Context(), rec); err != nil {
			return err
		}
		submitted = true
	}

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(cmd.Context(), rec, store.NoteSHA(note), submitted)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "recorded order %s\n", id)
	return writeRecord(cmd, rec)
}

func init() {
	submitCmd.Flags().Bool("json", false, "output the record as JSON instead of YAML")
	submitCmd.Flags().Bool("json-envelope", false, "treat the input as a JSON envelope with a data field")
	submitCmd.Flags().Bool("dry-run", false, "skip the POST and only record the order locally")
	submitCmd.Flags().Duration("match-timeout", 0, "bound for each pattern-matching operation (default 2s)")
	submitCmd.Flags().String("endpoint", "", "submission endpoint URL")
	submitCmd.Flags().String("data-dir", "", "directory for the order log database (default data/)")

	rootCmd.AddCommand(submitCmd)
}
