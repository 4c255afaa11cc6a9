package store

import (
	"bytes"
	"encoding/json"

	"github.com/darzihq/darzi/internal/validation"
)

// Import replaces the persisted record wholesale with the given JSON blob.
// The blob must carry the four collections as arrays; id counters are raised
// above the highest imported id so later adds never collide.
func (s *Store) Import(raw []byte) (*Record, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	var probe struct {
		Customers    json.RawMessage `json:"customers"`
		Measurements json.RawMessage `json:"measurements"`
		Orders       json.RawMessage `json:"orders"`
		TeamMembers  json.RawMessage `json:"teamMembers"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ValidationError{Violations: validation.Violations{"file": "invalid_json"}}
	}
	v := validation.Violations{}
	checkArray("customers", probe.Customers, v)
	checkArray("measurements", probe.Measurements, v)
	checkArray("orders", probe.Orders, v)
	checkArray("teamMembers", probe.TeamMembers, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &ValidationError{Violations: validation.Violations{"file": "invalid_record"}}
	}
	rec.normalize()
	rec.repairCounters()
	if err := s.persist(&rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindRecord, Op: OpReplaced})
	return &rec, nil
}

func checkArray(field string, raw json.RawMessage, v validation.Violations) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		v[field] = "required"
		return
	}
	if trimmed[0] != '[' {
		v[field] = "must_be_array"
	}
}

// Reset wipes the persisted record and re-initializes it to defaults. This
// is the only path that repairs a corrupt record, and it only runs on
// explicit user request.
func (s *Store) Reset() (*Record, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Reset(); err != nil {
		return nil, &PersistenceError{Op: "reset", Err: err}
	}
	rec := defaultRecord()
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindRecord, Op: OpReplaced})
	return rec, nil
}
