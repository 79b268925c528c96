package parse

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/dme-engine/pkg/types"
)

func TestParse_FullNote(t *testing.T) {
	note := `Patient Name: Jane Doe
DOB: 04/12/1958
Diagnosis: Severe obstructive sleep apnea
Ordered by Dr. Patel
Patient requires CPAP therapy, full face mask with humidifier. AHI > 28.`

	rec, warnings, err := testParser().Parse(note)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if rec.Device != types.DeviceCPAP {
		t.Errorf("Device = %q, want CPAP", rec.Device)
	}
	if rec.PatientName != "Jane Doe" || rec.DOB != "04/12/1958" {
		t.Errorf("common fields wrong: %+v", rec)
	}
	if rec.OrderingProvider != "Dr. Patel" {
		t.Errorf("OrderingProvider = %q, want %q", rec.OrderingProvider, "Dr. Patel")
	}
	if rec.Qualifier != "AHI > 28" {
		t.Errorf("Qualifier = %q, want %q", rec.Qualifier, "AHI > 28")
	}
	if rec.MaskType == nil || *rec.MaskType != "full face" {
		t.Errorf("MaskType = %v, want full face", rec.MaskType)
	}
	if len(rec.AddOns) != 1 || rec.AddOns[0] != "humidifier" {
		t.Errorf("AddOns = %v, want [humidifier]", rec.AddOns)
	}
	if rec.Liters != nil || rec.Usage != nil {
		t.Errorf("oxygen fields set on CPAP record: %+v", rec)
	}
}

// A minimal note still produces a fully defaulted record: every common field
// falls back to Unknown and each miss is reported once.
func TestParse_MinimalNote(t *testing.T) {
	rec, warnings, err := testParser().Parse("Order for CPAP machine.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.Device != types.DeviceCPAP {
		t.Errorf("Device = %q, want CPAP", rec.Device)
	}
	for field, got := range map[string]string{
		"patient_name":      rec.PatientName,
		"dob":               rec.DOB,
		"diagnosis":         rec.Diagnosis,
		"ordering_provider": rec.OrderingProvider,
	} {
		if got != types.FieldUnknown {
			t.Errorf("%s = %q, want %q", field, got, types.FieldUnknown)
		}
	}
	if rec.Qualifier != "" {
		t.Errorf("Qualifier = %q, want empty", rec.Qualifier)
	}
	if rec.Liters != nil || rec.MaskType != nil || rec.Usage != nil || rec.AddOns != nil {
		t.Errorf("optional fields should all be absent: %+v", rec)
	}

	if len(warnings) != 4 {
		t.Fatalf("got %d warnings, want 4: %v", len(warnings), warnings)
	}
	seen := map[string]bool{}
	for _, w := range warnings {
		if seen[w.Field] {
			t.Errorf("duplicate warning for %s", w.Field)
		}
		seen[w.Field] = true
	}
	for _, field := range []string{"patient_name", "dob", "diagnosis", "ordering_provider"} {
		if !seen[field] {
			t.Errorf("no warning for missing %s", field)
		}
	}
}

func TestParse_OxygenRoundTrip(t *testing.T) {
	rec, _, err := testParser().Parse("Requires 2.5L of oxygen during sleep.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.Device != types.DeviceOxygen {
		t.Errorf("Device = %q, want Oxygen Tank", rec.Device)
	}
	if rec.Liters == nil || *rec.Liters != "2.5 L" {
		t.Errorf("Liters = %v, want 2.5 L", rec.Liters)
	}
	if rec.Usage == nil || *rec.Usage != "sleep" {
		t.Errorf("Usage = %v, want sleep", rec.Usage)
	}
}

func TestParse_UnknownDeviceWarns(t *testing.T) {
	rec, warnings, err := testParser().Parse("Patient reports feeling fine today.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Device != types.DeviceUnknown {
		t.Errorf("Device = %q, want Unknown", rec.Device)
	}

	var deviceMiss bool
	for _, w := range warnings {
		if w.Field == "device" {
			deviceMiss = true
		}
	}
	if !deviceMiss {
		t.Errorf("no device-miss warning in %v", warnings)
	}
}

func TestParse_InvalidInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		rec, warnings, err := testParser().Parse(text)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidInput", text, err)
		}
		if rec != nil || warnings != nil {
			t.Errorf("Parse(%q) returned a record on fatal failure", text)
		}
	}
}

func TestParse_MatchTimeout(t *testing.T) {
	p := NewParser(types.ParserConfig{MatchTimeout: time.Nanosecond})
	// Large enough that scanning cannot finish inside the bound.
	note := "CPAP order\n" + strings.Repeat("x", 16<<20)

	rec, _, err := p.Parse(note)
	if !errors.Is(err, ErrMatchTimeout) {
		t.Fatalf("err = %v, want ErrMatchTimeout", err)
	}
	if rec != nil {
		t.Errorf("record returned despite timeout")
	}
}

// Catalogs are immutable and the parser holds no per-call state, so
// concurrent Parse calls on different notes are safe.
func TestParse_ConcurrentCalls(t *testing.T) {
	p := testParser()
	notes := []string{
		"Order for CPAP machine. AHI: 12.",
		"Requires 2 L of oxygen during exertion.",
		"Wheelchair for home use.\nPatient Name: Bob Lee",
		"Needs crutches after surgery.",
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		for _, note := range notes {
			wg.Add(1)
			go func(n string) {
				defer wg.Done()
				if _, _, err := p.Parse(n); err != nil {
					t.Errorf("Parse(%q): %v", n, err)
				}
			}(note)
		}
	}
	wg.Wait()
}
