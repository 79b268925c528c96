// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"

	"github.com/pdiddy/dme-engine/pkg/types"
)

// deviceCatalog maps note keywords to device categories. Order matters: when
// several keywords occur in one note, the earliest catalog entry wins no
// matter where each keyword physically appears in the text.
var deviceCatalog = []struct {
	keyword string
	device  types.Device
}{
	{"cpap", types.DeviceCPAP},
	{"oxygen", types.DeviceOxygen},
	{"wheelchair", types.DeviceWheelchair},
	{"walker", types.DeviceWalkingAid},
	{"cane", types.DeviceWalkingAid},
	{"crutches", types.DeviceWalkingAid},
	{"knee scooter", types.DeviceWalkingAid},
}

// classifyDevice scans the catalog in listed order and returns the category
// of the first keyword found anywhere in the note (case-insensitive).
// When no keyword matches it returns DeviceUnknown and false.
func classifyDevice(text string) (types.Device, bool) {
	lower := strings.ToLower(text)
	for _, entry := range deviceCatalog {
		if strings.Contains(lower, entry.keyword) {
			return entry.device, true
		}
	}
	return types.DeviceUnknown, false
}
