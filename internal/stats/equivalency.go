package stats

import (
	"fmt"
	"math"
)

// EPA greenhouse gas equivalency divisors, kg CO2e per unit.
const (
	// MilesDrivenFactor is kg CO2e per mile in an average passenger vehicle.
	MilesDrivenFactor = 0.192
	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822
	// MinEquivalencyKg is the smallest total worth translating; below it the
	// results become meaninglessly small.
	MinEquivalencyKg = 1.0
)

// EquivalencyType names a real-world comparison.
type EquivalencyType int

const (
	// EquivalencyMilesDriven compares CO2e to miles driven.
	EquivalencyMilesDriven EquivalencyType = iota
	// EquivalencySmartphonesCharged compares CO2e to smartphone charges.
	EquivalencySmartphonesCharged
)

func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "miles_driven"
	case EquivalencySmartphonesCharged:
		return "smartphones_charged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Equivalency is one computed comparison.
type Equivalency struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// Equivalencies is the set of comparisons for a CO2e amount.
type Equivalencies struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results,omitempty"`
	DisplayText string        `json:"display_text,omitempty"`
	IsEmpty     bool          `json:"is_empty"`
}

// ComputeEquivalencies translates kg into miles driven and smartphones
// charged. Amounts below MinEquivalencyKg, or that are not finite, yield an
// empty result.
func ComputeEquivalencies(kg float64) Equivalencies {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyKg {
		return Equivalencies{InputKg: kg, IsEmpty: true}
	}

	miles := kg / MilesDrivenFactor
	phones := kg / SmartphoneChargeFactor
	milesText := FormatApprox(miles)
	phonesText := FormatApprox(phones)

	return Equivalencies{
		InputKg: kg,
		Results: []Equivalency{
			{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesText, Label: "miles driven"},
			{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesText, Label: "smartphones charged"},
		},
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones", milesText, phonesText),
	}
}
