// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dme-engine/internal/parse"
	"github.com/pdiddy/dme-engine/internal/submit"
	"github.com/pdiddy/dme-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [note-file]",
	Short: "Extract a structured order record from a clinical note",
	Long: `Parse reads a clinical note from the file argument or stdin, classifies
the device, extracts the labeled and device-specific fields, and prints the
completed order record. Fields that cannot be determined keep their defaults
and are reported as warnings on stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
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
	return writeRecord(cmd, rec)
}

// writeRecord prints the record to stdout as YAML, or JSON with --json.
func writeRecord(cmd *cobra.Command, rec *types.OrderRecord) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %v", submit.ErrSerialize, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", submit.ErrSerialize, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	parseCmd.Flags().Bool("json", false, "output the record as JSON instead of YAML")
	parseCmd.Flags().Bool("json-envelope", false, "treat the input as a JSON envelope with a data field")
	parseCmd.Flags().Duration("match-timeout", 0, "bound for each pattern-matching operation (default 2s)")

	rootCmd.AddCommand(parseCmd)
}
