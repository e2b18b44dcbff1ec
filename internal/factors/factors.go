// Package factors holds the static emission factor table.
//
// Each factor converts a raw activity amount into kilograms of CO2e:
// transport factors are per kilometre, food factors per kilogram and the
// energy factor per kilowatt-hour. The table is built once at package init
// and never mutated.
package factors

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the kind of activity a factor applies to.
type Category int

const (
	// Transport covers distance travelled by a transport mode.
	Transport Category = iota
	// Food covers mass of food eaten by diet type.
	Food
	// Energy covers household electricity consumption.
	Energy
)

// Categories lists every category in display order.
//
//nolint:gochecknoglobals // Fixed enumeration order used by aggregators and renderers.
var Categories = []Category{Transport, Food, Energy}

// String returns the lowercase category name used in storage and flags.
func (c Category) String() string {
	switch c {
	case Transport:
		return "transport"
	case Food:
		return "food"
	case Energy:
		return "energy"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Title returns the capitalised category name used as a chart label.
func (c Category) Title() string {
	switch c {
	case Transport:
		return "Transport"
	case Food:
		return "Food"
	case Energy:
		return "Energy"
	default:
		return c.String()
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Transport && c <= Energy
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transport":
		return Transport, nil
	case "food":
		return Food, nil
	case "energy":
		return Energy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Unit returns the amount unit a category's factors are expressed against.
func (c Category) Unit() string {
	switch c {
	case Transport:
		return UnitKilometre
	case Food:
		return UnitKilogram
	case Energy:
		return UnitKilowattHour
	default:
		return ""
	}
}

// Amount units.
const (
	UnitKilometre    = "km"
	UnitKilogram     = "kg"
	UnitKilowattHour = "kWh"
)

// Factor keys. Transport keys are modes, food keys are diet types and the
// energy category always resolves to KeyElectricity.
const (
	KeyCar         = "car"
	KeyBus         = "bus"
	KeyTrain       = "train"
	KeyBike        = "bike"
	KeyVeg         = "veg"
	KeyMixed       = "mixed"
	KeyMeat        = "meat"
	KeyElectricity = "electricity"
)

// Factor is a single emission coefficient.
type Factor struct {
	Category    Category `json:"category"    yaml:"category"`
	Key         string   `json:"key"         yaml:"key"`
	Coefficient float64  `json:"coefficient" yaml:"coefficient"` // kg CO2e per Unit
	Unit        string   `json:"unit"        yaml:"unit"`
}

// table maps category then key to a coefficient.
//
//nolint:gochecknoglobals // Immutable lookup table, built once.
var table = map[Category]map[string]float64{
	Transport: {
		KeyCar:   0.170,
		KeyBus:   0.080,
		KeyTrain: 0.040,
		KeyBike:  0.005,
	},
	Food: {
		KeyVeg:   1.5,
		KeyMixed: 3.0,
		KeyMeat:  7.0,
	},
	Energy: {
		KeyElectricity: 0.400,
	},
}

// Lookup returns the factor for key within category. Keys are matched
// case-sensitively, as stored. The boolean is false when either the
// category or the key is not in the table.
func Lookup(c Category, key string) (Factor, bool) {
	keys, ok := table[c]
	if !ok {
		return Factor{}, false
	}
	coefficient, ok := keys[key]
	if !ok {
		return Factor{}, false
	}
	return Factor{Category: c, Key: key, Coefficient: coefficient, Unit: c.Unit()}, true
}

// ResolveKey returns the factor key a submission subtype maps to.
// Energy ignores the subtype.
func ResolveKey(c Category, subtype string) string {
	if c == Energy {
		return KeyElectricity
	}
	return subtype
}

// Keys returns the sorted factor keys known for a category.
func Keys(c Category) []string {
	keys := make([]string, 0, len(table[c]))
	for k := range table[c] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every factor ordered by category then key.
func All() []Factor {
	var out []Factor
	for _, c := range Categories {
		for _, k := range Keys(c) {
			f, _ := Lookup(c, k)
			out = append(out, f)
		}
	}
	return out
}
