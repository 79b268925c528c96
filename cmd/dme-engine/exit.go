// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/dme-engine/internal/parse"
	"github.com/pdiddy/dme-engine/internal/submit"
)

// errConfig marks a configuration problem (missing endpoint, bad config
// file). It shares an exit code with invalid note input.
var errConfig = errors.New("invalid configuration")

// Process exit codes expected by callers of the CLI.
const (
	exitOK                = 0
	exitInvalidInput      = 1
	exitExtractionTimeout = 2
	exitSerialization     = 3
	exitTransportTimeout  = 4
	exitTransport         = 5
	exitUnhandled         = 6
)

// exitCode maps a failure to its process exit code. Unclassified failures
// get the unhandled code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, parse.ErrInvalidInput), errors.Is(err, errConfig):
		return exitInvalidInput
	case errors.Is(err, parse.ErrMatchTimeout):
		return exitExtractionTimeout
	case errors.Is(err, submit.ErrSerialize):
		return exitSerialization
	case errors.Is(err, submit.ErrTransportTimeout):
		return exitTransportTimeout
	case errors.Is(err, submit.ErrTransport):
		return exitTransport
	}
	return exitUnhandled
}
