// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/dme-engine/pkg/types"
)

// commonFields drives the four independent labeled-line extractions. Each
// pattern captures the remainder of its line; the ordering provider pattern
// additionally requires the captured text to start with "Dr.".
var commonFields = []struct {
	name   string
	re     *regexp.Regexp
	assign func(*types.OrderRecord, string)
}{
	{
		name:   "patient_name",
		re:     regexp.MustCompile(`(?im)^[ \t]*Patient Name:[ \t]*(.+)$`),
		assign: func(r *types.OrderRecord, v string) { r.PatientName = v },
	},
	{
		name:   "dob",
		re:     regexp.MustCompile(`(?im)^[ \t]*DOB:[ \t]*(.+)$`),
		assign: func(r *types.OrderRecord, v string) { r.DOB = v },
	},
	{
		name:   "diagnosis",
		re:     regexp.MustCompile(`(?im)^[ \t]*Diagnosis:[ \t]*(.+)$`),
		assign: func(r *types.OrderRecord, v string) { r.Diagnosis = v },
	},
	{
		name:   "ordering_provider",
		re:     regexp.MustCompile(`(?i)(?:Ordered by|Ordering Physician:)[ \t]*(Dr\.[^\n\r]*)`),
		assign: func(r *types.OrderRecord, v string) { r.OrderingProvider = v },
	},
}

// extractCommonFields runs the four labeled-line extractions. Each field is
// independent: a miss defaults that field and produces one warning naming
// it, and never blocks extraction of the others.
func (p *Parser) extractCommonFields(text string, rec *types.OrderRecord) ([]types.Warning, error) {
	var warnings []types.Warning
	for _, field := range commonFields {
		m, err := findSubmatch(field.re, text, p.matchTimeout)
		if err != nil {
			return nil, err
		}
		if len(m) < 2 || strings.TrimSpace(m[1]) == "" {
			warnings = append(warnings, types.Warning{
				Field:   field.name,
				Message: "not found in note",
			})
			continue
		}
		field.assign(rec, strings.TrimSpace(m[1]))
	}
	return warnings, nil
}
