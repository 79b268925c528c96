// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dme-engine/internal/parse"
	"github.com/pdiddy/dme-engine/pkg/types"
)

// envelope is the optional JSON wrapper around note text.
type envelope struct {
	Data string `json:"data"`
}

// readNote returns the note text from the file argument, or stdin when no
// argument is given. A .json file (or the --json-envelope flag) is unwrapped
// from a {"data": "..."} envelope first; the engine itself only ever sees
// plain text.
func readNote(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		name string
		err  error
	)
	if len(args) > 0 {
		name = args[0]
		data, err = os.ReadFile(name)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", fmt.Errorf("reading note: %w", err)
	}

	wrapped, _ := cmd.Flags().GetBool("json-envelope")
	if wrapped || strings.HasSuffix(name, ".json") {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return "", fmt.Errorf("%w: decoding note envelope: %v", parse.ErrInvalidInput, err)
		}
		return env.Data, nil
	}
	return string(data), nil
}

// printWarnings writes one line per recoverable extraction miss to stderr.
func printWarnings(warnings []types.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s %s\n", w.Field, w.Message)
	}
}
