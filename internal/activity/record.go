package activity

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/carbontrack/internal/factors"
)

// Record is one logged activity with its computed emission.
// Records are immutable once appended to a Store.
type Record struct {
	// ID uniquely identifies the record. New records get a ULID.
	ID string
	// Category is the activity category.
	Category factors.Category
	// Data is the originating submission payload.
	Data map[string]string
	// CO2e is the emission in kilograms, computed once at creation.
	CO2e float64
	// Description is a human-readable summary.
	Description string
	// CreatedAt is when the record was logged.
	CreatedAt time.Time
}

// recordJSON is the persisted form of a Record.
// ID is raw so that numeric legacy identifiers still decode.
type recordJSON struct {
	ID          json.RawMessage  `json:"id"`
	CreatedAt   *int64           `json:"created_at,omitempty"`
	Category    factors.Category `json:"category"`
	Data        map[string]any   `json:"data"`
	CO2e        float64          `json:"co2e"`
	Description string           `json:"description"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}

	out := recordJSON{
		ID:          id,
		Category:    r.Category,
		CO2e:        r.CO2e,
		Description: r.Description,
	}
	if !r.CreatedAt.IsZero() {
		ms := r.CreatedAt.UnixMilli()
		out.CreatedAt = &ms
	}
	if r.Data != nil {
		out.Data = make(map[string]any, len(r.Data))
		for k, v := range r.Data {
			out.Data[k] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Identifiers may be strings or numbers. A numeric identifier, or a string of
// digits, is the millisecond timestamp used by older logs and doubles as
// CreatedAt when created_at is absent. A ULID identifier supplies its embedded
// time likewise. Any other identifier leaves CreatedAt zero.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if math.IsNaN(in.CO2e) || in.CO2e < 0 {
		return fmt.Errorf("%w: co2e %v", ErrInvalidRecord, in.CO2e)
	}

	id, legacyMillis, err := decodeID(in.ID)
	if err != nil {
		return err
	}

	rec := Record{
		ID:          id,
		Category:    in.Category,
		CO2e:        in.CO2e,
		Description: in.Description,
	}

	switch {
	case in.CreatedAt != nil:
		rec.CreatedAt = time.UnixMilli(*in.CreatedAt)
	case legacyMillis != nil:
		rec.CreatedAt = time.UnixMilli(*legacyMillis)
	default:
		if parsed, parseErr := ulid.ParseStrict(id); parseErr == nil {
			rec.CreatedAt = ulid.Time(parsed.Time())
		}
	}

	if in.Data != nil {
		rec.Data = make(map[string]string, len(in.Data))
		for k, v := range in.Data {
			rec.Data[k] = stringifyPayloadValue(v)
		}
	}

	*r = rec
	return nil
}

// maxLegacyID bounds numeric identifiers to integers a float64 holds exactly.
const maxLegacyID = 1 << 53

// decodeID returns the identifier text and, for numeric identifiers, the
// number interpreted as Unix milliseconds.
func decodeID(raw json.RawMessage) (string, *int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", nil, err
		}
		if s == "" {
			return "", nil, fmt.Errorf("%w: empty id", ErrInvalidRecord)
		}
		if isDigits(s) {
			if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms <= maxLegacyID {
				return s, &ms, nil
			}
		}
		return s, nil, nil
	}

	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxLegacyID {
		return "", nil, fmt.Errorf("%w: id %s", ErrInvalidRecord, trimmed)
	}
	ms := int64(f)
	return strconv.FormatInt(ms, 10), &ms, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// stringifyPayloadValue renders a decoded payload value as the text a form
// would have submitted.
func stringifyPayloadValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// EncodeLog serialises records as a JSON array.
func EncodeLog(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding activity log: %w", err)
	}
	return string(data), nil
}

// DecodeLog parses a JSON array of records. A JSON null decodes as an empty log.
// When an id repeats, only its first record is kept.
func DecodeLog(payload string) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLog, err)
	}
	return uniqueRecords(records), nil
}

func uniqueRecords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// copyRecord returns a copy of r that shares no mutable state.
func copyRecord(r Record) Record {
	c := r
	if r.Data != nil {
		c.Data = make(map[string]string, len(r.Data))
		for k, v := range r.Data {
			c.Data[k] = v
		}
	}
	return c
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = copyRecord(r)
	}
	return out
}
