// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse converts a free-text clinical note into a structured
// durable-medical-equipment order record.
//
// A parse is one pass through four stages: device classification, common
// field extraction, device-specific detail extraction, and assembly of
// defaults. Field-level misses are non-fatal; each is defaulted and reported
// as a Warning. Only empty input, a pattern-match timeout, and an unexpected
// failure abort the parse, and no record is returned on those paths.
package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/dme-engine/pkg/types"
)

// Sentinel errors for the fatal parse outcomes. Callers distinguish them
// with errors.Is to pick a response (user message, retry, alert).
var (
	// ErrInvalidInput marks a nil, empty, or whitespace-only note.
	ErrInvalidInput = errors.New("note text is empty")

	// ErrMatchTimeout marks a pattern-matching operation that exceeded
	// its execution bound.
	ErrMatchTimeout = errors.New("pattern match timed out")
)

const defaultMatchTimeout = 2 * time.Second

// Parser is the note-to-order extraction engine. It is stateless between
// calls; the keyword and pattern catalogs are package-level immutables, so
// concurrent Parse calls on different notes are safe without locking.
type Parser struct {
	matchTimeout time.Duration
}

// NewParser builds a Parser from cfg, applying the default match timeout
// when none is configured.
func NewParser(cfg types.ParserConfig) *Parser {
	timeout := cfg.MatchTimeout
	if timeout <= 0 {
		timeout = defaultMatchTimeout
	}
	return &Parser{matchTimeout: timeout}
}

// Parse extracts one OrderRecord from note text. It returns the fully
// populated record plus one warning per field (or device category) that
// could not be determined. On a fatal failure the record is nil: empty input
// yields ErrInvalidInput, an exceeded match bound yields ErrMatchTimeout,
// and any panic during extraction is recovered and returned as an error
// carrying its context.
func (p *Parser) Parse(text string) (rec *types.OrderRecord, warnings []types.Warning, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrInvalidInput
	}

	defer func() {
		if r := recover(); r != nil {
			rec = nil
			warnings = nil
			err = fmt.Errorf("unexpected failure during extraction: %v", r)
		}
	}()

	rec = &types.OrderRecord{}

	device, found := classifyDevice(text)
	rec.Device = device
	if !found {
		warnings = append(warnings, types.Warning{
			Field:   "device",
			Message: "no device keyword recognized",
		})
	}

	fieldWarnings, err := p.extractCommonFields(text, rec)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, fieldWarnings...)

	if err := p.extractDetails(text, rec); err != nil {
		return nil, nil, err
	}

	finalize(rec)
	return rec, warnings, nil
}

// finalize applies default values exactly where an extractor left a field
// untouched. The four common fields always end up with a value.
func finalize(rec *types.OrderRecord) {
	if rec.Device == "" {
		rec.Device = types.DeviceUnknown
	}
	for _, field := range []*string{
		&rec.PatientName,
		&rec.DOB,
		&rec.Diagnosis,
		&rec.OrderingProvider,
	} {
		if *field == "" {
			*field = types.FieldUnknown
		}
	}
}
