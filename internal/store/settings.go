package store

import (
	"regexp"
	"strings"

	"github.com/darzihq/darzi/internal/validation"
)

// Settings is the non-collection part of the record.
type Settings struct {
	SizeFormat              string  `json:"sizeFormat"`
	DateFormat              string  `json:"dateFormat"`
	Theme                   string  `json:"theme"`
	Language                string  `json:"language"`
	MeasurementFieldPolicy  string  `json:"measurementFieldPolicy"`
	CustomMeasurementFields []Field `json:"customMeasurementFields"`
}

type SettingsUpdate struct {
	SizeFormat             *string `json:"sizeFormat"`
	DateFormat             *string `json:"dateFormat"`
	Theme                  *string `json:"theme"`
	Language               *string `json:"language"`
	MeasurementFieldPolicy *string `json:"measurementFieldPolicy"`
}

func settingsOf(rec *Record) *Settings {
	return &Settings{
		SizeFormat:              rec.SizeFormat,
		DateFormat:              rec.DateFormat,
		Theme:                   rec.Theme,
		Language:                rec.Language,
		MeasurementFieldPolicy:  rec.MeasurementFieldPolicy,
		CustomMeasurementFields: rec.CustomMeasurementFields,
	}
}

func (s *Store) Settings() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return settingsOf(rec), nil
}

// UpdateSettings applies the provided fields and persists immediately.
func (s *Store) UpdateSettings(upd SettingsUpdate) (*Settings, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	if upd.SizeFormat != nil {
		validation.OneOf("sizeFormat", *upd.SizeFormat, SizeFormats, v)
	}
	if upd.DateFormat != nil {
		validation.OneOf("dateFormat", *upd.DateFormat, DateFormats, v)
	}
	if upd.MeasurementFieldPolicy != nil {
		validation.OneOf("measurementFieldPolicy", *upd.MeasurementFieldPolicy, []string{PolicyFixedTemplates, PolicyCustomOnly}, v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	if upd.SizeFormat != nil {
		rec.SizeFormat = *upd.SizeFormat
	}
	if upd.DateFormat != nil {
		rec.DateFormat = *upd.DateFormat
	}
	if upd.Theme != nil {
		rec.Theme = *upd.Theme
	}
	if upd.Language != nil {
		rec.Language = *upd.Language
	}
	if upd.MeasurementFieldPolicy != nil {
		rec.MeasurementFieldPolicy = *upd.MeasurementFieldPolicy
	}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindSettings, Op: OpUpdated})
	return settingsOf(rec), nil
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// FieldKey derives a field key from its label: lowercased, runs of
// whitespace replaced by underscores.
func FieldKey(label string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "_")
}

// AddCustomField appends a user-defined measurement field. A label whose
// derived key collides with an existing field is rejected.
func (s *Store) AddCustomField(label string) (*Field, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("label", label, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	key := FieldKey(label)
	for _, f := range rec.CustomMeasurementFields {
		if f.Key == key {
			return nil, &ValidationError{Violations: validation.Violations{"label": "already_exists"}}
		}
	}
	field := Field{Key: key, Label: strings.TrimSpace(label)}
	rec.CustomMeasurementFields = append(rec.CustomMeasurementFields, field)
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindSettings, Op: OpUpdated})
	return &field, nil
}

// RemoveCustomField deletes a user-defined field by key. Removing an absent
// key is a no-op. Existing measurements keep their recorded values.
func (s *Store) RemoveCustomField(key string) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	kept := rec.CustomMeasurementFields[:0]
	removed := false
	for _, f := range rec.CustomMeasurementFields {
		if f.Key == key {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return nil
	}
	rec.CustomMeasurementFields = kept
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindSettings, Op: OpUpdated})
	return nil
}
