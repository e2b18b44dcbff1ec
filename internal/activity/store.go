package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rshade/carbontrack/internal/kvstore"
	"github.com/rshade/carbontrack/internal/logging"
)

// DefaultStorageKey is the key the activity log is persisted under.
const DefaultStorageKey = "carbonActivities"

// ChangeKind identifies a log mutation.
type ChangeKind int

const (
	// ChangeAppended is emitted after records were appended and persisted.
	ChangeAppended ChangeKind = iota
	// ChangeCleared is emitted after the log was cleared. Views derived from
	// the log should be rebuilt from scratch.
	ChangeCleared
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAppended:
		return "appended"
	case ChangeCleared:
		return "cleared"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// ChangeEvent describes a completed mutation.
type ChangeEvent struct {
	Kind ChangeKind
	// Appended holds the new records for ChangeAppended.
	Appended []Record
	// Count is the log length after the mutation.
	Count int
}

// Listener is notified after a mutation has been persisted.
type Listener func(ChangeEvent)

// Store is the in-memory activity log backed by a key-value store.
// Every mutation is persisted before it returns.
type Store struct {
	mu        sync.RWMutex
	kv        kvstore.Store
	key       string
	ids       IDGenerator
	now       func() time.Time
	records   []Record
	listeners []Listener
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator overrides the ULID generator.
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock overrides time.Now for record timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty Store over kv. Call Load to read persisted records.
func NewStore(kv kvstore.Store, opts ...StoreOption) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultStorageKey,
		ids:     NewULIDGenerator(),
		now:     time.Now,
		records: []Record{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory log with the persisted one.
// A missing key or an undecodable payload both yield an empty log; only
// backend failures are returned.
func (s *Store) Load(ctx context.Context) error {
	log := logging.FromContext(ctx)

	payload, err := s.kv.Get(ctx, s.key)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("loading activity log: %w", err)
	}

	records := []Record{}
	if err == nil {
		decoded, decodeErr := DecodeLog(payload)
		if decodeErr != nil {
			log.Warn().
				Str("component", "store").
				Str("operation", "load").
				Str("key", s.key).
				Err(decodeErr).
				Msg("persisted activity log is malformed, starting empty")
		} else {
			records = decoded
		}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	log.Debug().
		Str("component", "store").
		Str("operation", "load").
		Int("records", len(records)).
		Msg("activity log loaded")
	return nil
}

// AppendAll appends records in order, assigning an ID and CreatedAt to those
// without one, persists the whole log and returns a copy of it.
//
// Appending nothing is a no-op and performs no write. If persisting fails the
// append is rolled back and the error returned.
func (s *Store) AppendAll(ctx context.Context, records []Record) ([]Record, error) {
	if len(records) == 0 {
		return s.Records(), nil
	}

	s.mu.Lock()

	seen := make(map[string]struct{}, len(s.records)+len(records))
	for _, r := range s.records {
		seen[r.ID] = struct{}{}
	}

	now := s.now()
	prepared := make([]Record, 0, len(records))
	for i, r := range records {
		if !r.Category.Valid() || r.CO2e < 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: record %d", ErrInvalidRecord, i)
		}
		r = copyRecord(r)
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.ID == "" {
			r.ID = s.ids.NewID(r.CreatedAt)
		}
		if _, dup := seen[r.ID]; dup {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
		prepared = append(prepared, r)
	}

	previous := s.records
	next := make([]Record, 0, len(previous)+len(prepared))
	next = append(next, previous...)
	next = append(next, prepared...)

	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.records = next
	snapshot := copyRecords(next)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("component", "store").
		Str("operation", "append").
		Int("appended", len(prepared)).
		Int("records", len(snapshot)).
		Float64("co2e_added_kg", TotalCO2e(prepared)).
		Msg("activities appended")

	notify(listeners, ChangeEvent{Kind: ChangeAppended, Appended: copyRecords(prepared), Count: len(snapshot)})
	return snapshot, nil
}

// Submit computes a record for each submission and appends them as one batch.
// It returns only the newly appended records.
func (s *Store) Submit(ctx context.Context, subs []Submission) ([]Record, error) {
	if len(subs) == 0 {
		return nil, ErrNoActivities
	}

	records := make([]Record, len(subs))
	for i, sub := range subs {
		records[i] = NewRecord(sub)
		if records[i].Description == ErrorDescription {
			logging.FromContext(ctx).Warn().
				Str("component", "store").
				Str("category", sub.Category.String()).
				Str("subtype", sub.Subtype).
				Str("amount", sub.Amount).
				Msg("submission could not be computed, recording zero emission")
		}
	}

	updated, err := s.AppendAll(ctx, records)
	if err != nil {
		return nil, err
	}
	return updated[len(updated)-len(records):], nil
}

// ClearAll empties the log and removes it from the backend, then notifies
// listeners with ChangeCleared.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clearing activity log: %w", err)
	}
	s.records = []Record{}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("component", "store").
		Str("operation", "clear").
		Msg("activity log cleared")

	notify(listeners, ChangeEvent{Kind: ChangeCleared})
	return nil
}

// Records returns a copy of the log in insertion order.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe registers a listener for future mutations.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) persistLocked(ctx context.Context, records []Record) error {
	payload, err := EncodeLog(records)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("persisting activity log: %w", err)
	}
	return nil
}

func notify(listeners []Listener, evt ChangeEvent) {
	for _, l := range listeners {
		l(evt)
	}
}
