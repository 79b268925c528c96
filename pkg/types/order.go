// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Device is the closed set of equipment categories the engine recognizes.
type Device string

const (
	DeviceCPAP       Device = "CPAP"
	DeviceOxygen     Device = "Oxygen Tank"
	DeviceWheelchair Device = "Wheelchair"
	DeviceWalkingAid Device = "Walking Aid"
	DeviceUnknown    Device = "Unknown"
)

// FieldUnknown is the default value for common fields that could not be
// extracted from the note.
const FieldUnknown = "Unknown"

// OrderRecord is the structured result of parsing one clinical note.
//
// Optional fields are pointers and AddOns is a nil slice when absent; an
// absent field is semantically different from an empty one and is omitted
// from serialized output. Device-specific fields are only ever populated for
// their owning device category.
type OrderRecord struct {
	// Device is the classified equipment category.
	Device Device `json:"device" yaml:"device"`

	// PatientName is the patient's name from the "Patient Name:" line.
	PatientName string `json:"patient_name" yaml:"patient_name"`

	// DOB is the date of birth from the "DOB:" line, kept as free text.
	DOB string `json:"dob" yaml:"dob"`

	// Diagnosis is the diagnosis from the "Diagnosis:" line.
	Diagnosis string `json:"diagnosis" yaml:"diagnosis"`

	// OrderingProvider is the "Dr. ..." token from an "Ordered by" or
	// "Ordering Physician:" line.
	OrderingProvider string `json:"ordering_provider" yaml:"ordering_provider"`

	// Qualifier is a device-dependent annotation: the AHI reading for CPAP,
	// the aid subtype for Walking Aid. Empty when the device has none.
	Qualifier string `json:"qualifier" yaml:"qualifier"`

	// Liters is the oxygen flow rate with unit suffix (e.g. "2 L").
	// Oxygen Tank only.
	Liters *string `json:"liters,omitempty" yaml:"liters,omitempty"`

	// MaskType is the recognized CPAP mask keyword. CPAP only.
	MaskType *string `json:"mask_type,omitempty" yaml:"mask_type,omitempty"`

	// AddOns lists matched add-on keywords in catalog order. Nil (absent)
	// when no add-on matched; never an empty non-nil slice. CPAP only.
	AddOns []string `json:"add_ons,omitempty" yaml:"add_ons,omitempty"`

	// Usage is the oxygen usage context: "sleep", "exertion", or
	// "sleep and exertion". Oxygen Tank only.
	Usage *string `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// Warning reports a single recoverable extraction miss. The named field kept
// its default value and parsing continued.
type Warning struct {
	// Field identifies what could not be determined (e.g. "device",
	// "patient_name").
	Field string `json:"field" yaml:"field"`

	// Message is a human-readable description of the miss.
	Message string `json:"message" yaml:"message"`
}
