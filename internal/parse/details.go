// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/dme-engine/pkg/types"
)

// Device-specific keyword catalogs, scanned in listed order.
var (
	maskCatalog  = []string{"full face"}
	addOnCatalog = []string{"humidifier"}
	aidSubtypes  = []string{"walker", "cane", "crutches", "knee scooter"}
)

var (
	// AHI reading: the index, one comparison operator, and an integer
	// (e.g. "AHI > 28", "AHI: 14").
	ahiRe = regexp.MustCompile(`(?i)AHI\s*([><=:])\s*(\d+)`)

	// Oxygen flow rate: a decimal or integer immediately followed by an
	// optional space and the unit L (e.g. "2 L", "2.5L").
	litersRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?) ?L\b`)
)

// extractDetails dispatches on the classified device category. The variants
// are mutually exclusive; Wheelchair and Unknown carry common fields only.
func (p *Parser) extractDetails(text string, rec *types.OrderRecord) error {
	switch rec.Device {
	case types.DeviceCPAP:
		return p.extractCPAP(text, rec)
	case types.DeviceOxygen:
		return p.extractOxygen(text, rec)
	case types.DeviceWalkingAid:
		extractWalkingAid(text, rec)
	}
	return nil
}

// extractCPAP captures the mask type (first catalog match), add-ons (every
// catalog match, in catalog order), and the AHI qualifier.
func (p *Parser) extractCPAP(text string, rec *types.OrderRecord) error {
	lower := strings.ToLower(text)

	for _, mask := range maskCatalog {
		if strings.Contains(lower, mask) {
			m := mask
			rec.MaskType = &m
			break
		}
	}

	// AddOns stays nil when nothing matched; absent and empty differ on
	// the wire.
	for _, addOn := range addOnCatalog {
		if strings.Contains(lower, addOn) {
			rec.AddOns = append(rec.AddOns, addOn)
		}
	}

	m, err := findSubmatch(ahiRe, text, p.matchTimeout)
	if err != nil {
		return err
	}
	if len(m) == 3 {
		if m[1] == ":" {
			rec.Qualifier = fmt.Sprintf("AHI: %s", m[2])
		} else {
			rec.Qualifier = fmt.Sprintf("AHI %s %s", m[1], m[2])
		}
	}
	return nil
}

// extractOxygen captures the flow rate and the usage context. Sleep and
// exertion are tested independently so a note mentioning both always yields
// "sleep and exertion" in that order.
func (p *Parser) extractOxygen(text string, rec *types.OrderRecord) error {
	m, err := findSubmatch(litersRe, text, p.matchTimeout)
	if err != nil {
		return err
	}
	if len(m) == 2 {
		liters := m[1] + " L"
		rec.Liters = &liters
	}

	lower := strings.ToLower(text)
	sleep := strings.Contains(lower, "sleep")
	exertion := strings.Contains(lower, "exertion")

	var usage string
	switch {
	case sleep && exertion:
		usage = "sleep and exertion"
	case sleep:
		usage = "sleep"
	case exertion:
		usage = "exertion"
	}
	if usage != "" {
		rec.Usage = &usage
	}
	return nil
}

// extractWalkingAid sets the aid subtype qualifier. This category never
// reports mask, liters, usage, or add-on fields, even when the note happens
// to contain those keywords as coincidental substrings, so any value left
// from an earlier default state is cleared first.
func extractWalkingAid(text string, rec *types.OrderRecord) {
	rec.MaskType = nil
	rec.Liters = nil
	rec.Usage = nil
	rec.AddOns = nil
	rec.Qualifier = ""

	lower := strings.ToLower(text)
	for _, subtype := range aidSubtypes {
		if strings.Contains(lower, subtype) {
			rec.Qualifier = "Type: " + subtype
			return
		}
	}
}
