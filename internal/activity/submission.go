package activity

import (
	"math"
	"strconv"
	"strings"

	"github.com/rshade/carbontrack/internal/factors"
)

// Payload keys stored in Record.Data.
const (
	payloadMode     = "mode"
	payloadDistance = "distance"
	payloadType     = "type"
	payloadAmount   = "amount"
)

// Submission is one raw activity as entered by the user.
// Amount is kept as the submitted text; it is parsed by ComputeEmission.
type Submission struct {
	Category factors.Category
	Subtype  string
	Amount   string
}

// NewTransportSubmission builds a transport submission for a mode and distance in km.
func NewTransportSubmission(mode, distance string) Submission {
	return Submission{Category: factors.Transport, Subtype: mode, Amount: distance}
}

// NewFoodSubmission builds a food submission for a diet type and mass in kg.
func NewFoodSubmission(dietType, massKg string) Submission {
	return Submission{Category: factors.Food, Subtype: dietType, Amount: massKg}
}

// NewEnergySubmission builds an electricity submission in kWh.
func NewEnergySubmission(kwh string) Submission {
	return Submission{Category: factors.Energy, Amount: kwh}
}

// Payload returns the raw data object persisted alongside the record.
func (s Submission) Payload() map[string]string {
	switch s.Category {
	case factors.Transport:
		return map[string]string{payloadMode: s.Subtype, payloadDistance: s.Amount}
	case factors.Food:
		return map[string]string{payloadType: s.Subtype, payloadAmount: s.Amount}
	default:
		return map[string]string{payloadAmount: s.Amount}
	}
}

// Form holds the values of the three form sections. Empty or non-positive
// amounts mean the section was not filled in.
type Form struct {
	TransportMode string
	Distance      string
	DietType      string
	Meals         string
	Electricity   string
}

// Submissions returns one submission per filled-in section, in the order
// transport, food, energy. Sections whose amount is not a positive number are
// skipped. ErrNoActivities is returned when nothing remains.
func (f Form) Submissions() ([]Submission, error) {
	var subs []Submission

	if _, ok := parseAmount(f.Distance); ok {
		subs = append(subs, NewTransportSubmission(f.TransportMode, f.Distance))
	}
	if _, ok := parseAmount(f.Meals); ok {
		subs = append(subs, NewFoodSubmission(f.DietType, f.Meals))
	}
	if _, ok := parseAmount(f.Electricity); ok {
		subs = append(subs, NewEnergySubmission(f.Electricity))
	}

	if len(subs) == 0 {
		return nil, ErrNoActivities
	}
	return subs, nil
}

// parseAmount parses submitted text as a finite, strictly positive number.
func parseAmount(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
