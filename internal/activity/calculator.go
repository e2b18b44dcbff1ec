package activity

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/rshade/carbontrack/internal/factors"
)

// ErrorDescription is the description of a submission that could not be computed.
const ErrorDescription = "Error"

// Result is the outcome of ComputeEmission.
type Result struct {
	// CO2e is the emission in kilograms; 0 when OK is false.
	CO2e float64
	// Description is a human-readable summary, or ErrorDescription.
	Description string
	// OK is false when the factor key was unknown or the amount invalid.
	OK bool
}

// ComputeEmission converts one submission into kilograms of CO2e using the
// static factor table.
//
// The factor key is the transport mode, the diet type, or "electricity" for
// energy. An unknown key, or an amount that is not a finite positive number,
// yields a zero-emission result with ErrorDescription. It never fails.
func ComputeEmission(sub Submission) Result {
	factor, ok := factors.Lookup(sub.Category, factors.ResolveKey(sub.Category, sub.Subtype))
	if !ok {
		return errorResult()
	}

	amount, ok := parseAmount(sub.Amount)
	if !ok {
		return errorResult()
	}

	return Result{
		CO2e:        factor.Coefficient * amount,
		Description: describe(sub, amount),
		OK:          true,
	}
}

func errorResult() Result {
	return Result{CO2e: 0, Description: ErrorDescription}
}

// describe builds "<Subtype> - <amount> <unit>", or "Electricity - <amount> kWh".
func describe(sub Submission, amount float64) string {
	formatted := strconv.FormatFloat(amount, 'f', -1, 64)
	if sub.Category == factors.Energy {
		return fmt.Sprintf("Electricity - %s %s", formatted, factors.UnitKilowattHour)
	}
	return fmt.Sprintf("%s - %s %s", capitalize(sub.Subtype), formatted, sub.Category.Unit())
}

// capitalize upper-cases the first character and leaves the rest unchanged.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NewRecord computes the emission for sub and wraps it in a Record.
// ID and CreatedAt are left empty for the Store to assign.
func NewRecord(sub Submission) Record {
	result := ComputeEmission(sub)
	return Record{
		Category:    sub.Category,
		Data:        sub.Payload(),
		CO2e:        result.CO2e,
		Description: result.Description,
	}
}

// TotalCO2e sums the emissions of records.
func TotalCO2e(records []Record) float64 {
	total := 0.0
	for _, r := range records {
		total += r.CO2e
	}
	return total
}
