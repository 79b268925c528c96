package parse

import (
	"testing"
	"time"

	"github.com/pdiddy/dme-engine/pkg/types"
)

func testParser() *Parser {
	return NewParser(types.ParserConfig{MatchTimeout: time.Second})
}

func TestExtractCommonFields(t *testing.T) {
	note := "Patient Name: Jane Doe\n" +
		"DOB: 04/12/1958\n" +
		"Diagnosis: COPD\n" +
		"Ordered by Dr. Patel\n"

	rec := &types.OrderRecord{}
	warnings, err := testParser().extractCommonFields(note, rec)
	if err != nil {
		t.Fatalf("extractCommonFields: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if rec.PatientName != "Jane Doe" {
		t.Errorf("PatientName = %q, want %q", rec.PatientName, "Jane Doe")
	}
	if rec.DOB != "04/12/1958" {
		t.Errorf("DOB = %q, want %q", rec.DOB, "04/12/1958")
	}
	if rec.Diagnosis != "COPD" {
		t.Errorf("Diagnosis = %q, want %q", rec.Diagnosis, "COPD")
	}
	if rec.OrderingProvider != "Dr. Patel" {
		t.Errorf("OrderingProvider = %q, want %q", rec.OrderingProvider, "Dr. Patel")
	}
}

func TestExtractCommonFields_Variants(t *testing.T) {
	tests := []struct {
		name  string
		note  string
		check func(t *testing.T, rec *types.OrderRecord)
	}{
		{
			name: "ordering physician label",
			note: "Ordering Physician: Dr. Nguyen\n",
			check: func(t *testing.T, rec *types.OrderRecord) {
				if rec.OrderingProvider != "Dr. Nguyen" {
					t.Errorf("OrderingProvider = %q, want %q", rec.OrderingProvider, "Dr. Nguyen")
				}
			},
		},
		{
			name: "case insensitive labels",
			note: "patient name: John Smith\ndob: 01/01/1970\n",
			check: func(t *testing.T, rec *types.OrderRecord) {
				if rec.PatientName != "John Smith" {
					t.Errorf("PatientName = %q, want %q", rec.PatientName, "John Smith")
				}
				if rec.DOB != "01/01/1970" {
					t.Errorf("DOB = %q, want %q", rec.DOB, "01/01/1970")
				}
			},
		},
		{
			name: "values trimmed of surrounding whitespace",
			note: "Diagnosis:   severe OSA  \n",
			check: func(t *testing.T, rec *types.OrderRecord) {
				if rec.Diagnosis != "severe OSA" {
					t.Errorf("Diagnosis = %q, want %q", rec.Diagnosis, "severe OSA")
				}
			},
		},
		{
			name: "provider without Dr. prefix is not captured",
			note: "Ordered by the pulmonology clinic\n",
			check: func(t *testing.T, rec *types.OrderRecord) {
				if rec.OrderingProvider != "" {
					t.Errorf("OrderingProvider = %q, want empty", rec.OrderingProvider)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &types.OrderRecord{}
			if _, err := testParser().extractCommonFields(tt.note, rec); err != nil {
				t.Fatalf("extractCommonFields: %v", err)
			}
			tt.check(t, rec)
		})
	}
}

// A missing field defaults independently and produces one warning naming it;
// it never blocks extraction of the other fields.
func TestExtractCommonFields_IndependentMisses(t *testing.T) {
	note := "Patient Name: Jane Doe\nDiagnosis: COPD\n"

	rec := &types.OrderRecord{}
	warnings, err := testParser().extractCommonFields(note, rec)
	if err != nil {
		t.Fatalf("extractCommonFields: %v", err)
	}

	if rec.PatientName != "Jane Doe" || rec.Diagnosis != "COPD" {
		t.Errorf("present fields not extracted: %+v", rec)
	}

	missed := map[string]bool{}
	for _, w := range warnings {
		missed[w.Field] = true
	}
	if len(warnings) != 2 || !missed["dob"] || !missed["ordering_provider"] {
		t.Errorf("warnings = %v, want misses for dob and ordering_provider", warnings)
	}
}
