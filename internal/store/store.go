// Package store is the sole read/write gateway to the persisted record. It
// owns id assignment, the monotonic counters and the settings, and publishes
// a mutation event after every persisted change. Every operation reads the
// whole record, mutates it in memory and writes it back wholesale; a mutex
// serializes operations within the process, and concurrent processes sharing
// a backend are last-writer-wins. Events are delivered after the mutex is
// released, so subscribers are free to read the store back.
package store

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/darzihq/darzi/internal/validation"
)

type Store struct {
	mu      sync.Mutex
	backend Backend
	events  *subscribers
	now     func() time.Time
}

func New(b Backend) *Store {
	return &Store{
		backend: b,
		events:  newSubscribers(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Initialize persists a default record if none exists yet. Calling it when a
// record is already persisted is a no-op, even if that record is corrupt:
// repair only happens through an explicit Reset.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.backend.Load()
	if errors.Is(err, ErrNoRecord) {
		return s.persist(defaultRecord())
	}
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}
	return nil
}

// Ping reports whether the backend is reachable. An uninitialized backend is
// healthy; a read failure is not.
func (s *Store) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.backend.Load()
	if err != nil && !errors.Is(err, ErrNoRecord) {
		return &PersistenceError{Op: "load", Err: err}
	}
	return nil
}

// GetAll returns the full deserialized record.
func (s *Store) GetAll() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SaveAll persists the given record wholesale, replacing any prior state.
// There are no merge semantics; the caller must pass a complete record.
func (s *Store) SaveAll(rec *Record) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindRecord, Op: OpReplaced})
	return nil
}

func (s *Store) load() (*Record, error) {
	raw, err := s.backend.Load()
	if errors.Is(err, ErrNoRecord) {
		return defaultRecord(), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &CorruptStateError{Err: err}
	}
	rec.normalize()
	return &rec, nil
}

func (s *Store) persist(rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := s.backend.Save(raw); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// --- Customers ---

type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
}

type CustomerUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Village *string `json:"village"`
}

func (s *Store) ListCustomers() ([]Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return rec.Customers, nil
}

func (s *Store) AddCustomer(in CustomerInput) (*Customer, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("phone", in.Phone, v)
	validation.Required("village", in.Village, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	c := Customer{
		ID:        rec.NextCustomerID,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Village:   strings.TrimSpace(in.Village),
		CreatedAt: s.now(),
	}
	rec.NextCustomerID++
	rec.Customers = append(rec.Customers, c)
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindCustomers, Op: OpAdded, ID: c.ID})
	return &c, nil
}

func (s *Store) UpdateCustomer(id int, upd CustomerUpdate) (*Customer, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rec.Customers {
		if rec.Customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Kind: "customer", ID: id}
	}
	c := &rec.Customers[idx]
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Village != nil {
		c.Village = *upd.Village
	}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindCustomers, Op: OpUpdated, ID: id})
	out := *c
	return &out, nil
}

// DeleteCustomer removes the customer with the given id. Deleting an absent
// id is a no-op. Dependent measurements and orders keep their customerId;
// consumers render dangling references as "Unknown".
func (s *Store) DeleteCustomer(id int) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	kept := rec.Customers[:0]
	removed := false
	for _, c := range rec.Customers {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil
	}
	rec.Customers = kept
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindCustomers, Op: OpDeleted, ID: id})
	return nil
}

// --- Measurements ---

type MeasurementInput struct {
	CustomerID   int                `json:"customerId"`
	ClothingType string             `json:"clothingType"`
	CustomType   string             `json:"customType"`
	Values       map[string]float64 `json:"measurements"`
}

type MeasurementUpdate struct {
	CustomerID   *int                `json:"customerId"`
	ClothingType *string             `json:"clothingType"`
	CustomType   *string             `json:"customType"`
	Values       *map[string]float64 `json:"measurements"`
}

func (s *Store) ListMeasurements() ([]Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return rec.Measurements, nil
}

func (s *Store) AddMeasurement(in MeasurementInput) (*Measurement, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.PositiveInt("customerId", in.CustomerID, v)
	validation.Required("clothingType", in.ClothingType, v)
	if rec.MeasurementFieldPolicy == PolicyFixedTemplates && in.ClothingType != "" {
		validation.OneOf("clothingType", in.ClothingType, ClothingTypes, v)
	}
	if in.ClothingType == "other" {
		validation.Required("customType", in.CustomType, v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	values := in.Values
	if values == nil {
		values = map[string]float64{}
	}
	m := Measurement{
		ID:           rec.NextMeasurementID,
		CustomerID:   in.CustomerID,
		ClothingType: in.ClothingType,
		CustomType:   strings.TrimSpace(in.CustomType),
		Values:       values,
		CreatedAt:    s.now(),
	}
	rec.NextMeasurementID++
	rec.Measurements = append(rec.Measurements, m)
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindMeasurements, Op: OpAdded, ID: m.ID})
	return &m, nil
}

func (s *Store) UpdateMeasurement(id int, upd MeasurementUpdate) (*Measurement, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rec.Measurements {
		if rec.Measurements[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Kind: "measurement", ID: id}
	}
	m := &rec.Measurements[idx]
	if upd.CustomerID != nil {
		m.CustomerID = *upd.CustomerID
	}
	if upd.ClothingType != nil {
		m.ClothingType = *upd.ClothingType
	}
	if upd.CustomType != nil {
		m.CustomType = *upd.CustomType
	}
	if upd.Values != nil {
		m.Values = *upd.Values
	}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindMeasurements, Op: OpUpdated, ID: id})
	out := *m
	return &out, nil
}

func (s *Store) DeleteMeasurement(id int) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	kept := rec.Measurements[:0]
	removed := false
	for _, m := range rec.Measurements {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return nil
	}
	rec.Measurements = kept
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindMeasurements, Op: OpDeleted, ID: id})
	return nil
}

// MeasurementFields returns the effective field set for a clothing type:
// template fields plus the custom vocabulary under fixed-templates, the
// custom vocabulary alone under custom-only.
func (s *Store) MeasurementFields(clothingType string) ([]Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	if rec.MeasurementFieldPolicy == PolicyFixedTemplates {
		fields := TemplateFor(clothingType)
		if fields == nil {
			fields = []Field{}
		}
		return append(fields, rec.CustomMeasurementFields...), nil
	}
	return rec.CustomMeasurementFields, nil
}

// --- Orders ---

type OrderInput struct {
	CustomerID   int     `json:"customerId"`
	TeamMemberID int     `json:"teamMemberId"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
}

type OrderUpdate struct {
	CustomerID   *int     `json:"customerId"`
	TeamMemberID *int     `json:"teamMemberId"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Status       *string  `json:"status"`
}

func (s *Store) ListOrders() ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return rec.Orders, nil
}

func (s *Store) AddOrder(in OrderInput) (*Order, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.PositiveInt("customerId", in.CustomerID, v)
	validation.Required("status", in.Status, v)
	if in.Status != "" {
		validation.OneOf("status", in.Status, []string{string(StatusPending), string(StatusWorking), string(StatusDelivered)}, v)
	}
	validation.NonNegativeFloat("price", in.Price, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	o := Order{
		ID:           rec.NextOrderID,
		CustomerID:   in.CustomerID,
		TeamMemberID: in.TeamMemberID,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Status:       OrderStatus(in.Status),
		CreatedAt:    s.now(),
	}
	rec.NextOrderID++
	rec.Orders = append(rec.Orders, o)
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindOrders, Op: OpAdded, ID: o.ID})
	return &o, nil
}

func (s *Store) UpdateOrder(id int, upd OrderUpdate) (*Order, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rec.Orders {
		if rec.Orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Kind: "order", ID: id}
	}
	v := validation.Violations{}
	if upd.Status != nil {
		validation.OneOf("status", *upd.Status, []string{string(StatusPending), string(StatusWorking), string(StatusDelivered)}, v)
	}
	if upd.Price != nil {
		validation.NonNegativeFloat("price", *upd.Price, v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	o := &rec.Orders[idx]
	if upd.CustomerID != nil {
		o.CustomerID = *upd.CustomerID
	}
	if upd.TeamMemberID != nil {
		o.TeamMemberID = *upd.TeamMemberID
	}
	if upd.Description != nil {
		o.Description = *upd.Description
	}
	if upd.Price != nil {
		o.Price = *upd.Price
	}
	if upd.Status != nil {
		o.Status = OrderStatus(*upd.Status)
	}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindOrders, Op: OpUpdated, ID: id})
	out := *o
	return &out, nil
}

func (s *Store) DeleteOrder(id int) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	kept := rec.Orders[:0]
	removed := false
	for _, o := range rec.Orders {
		if o.ID == id {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	if !removed {
		return nil
	}
	rec.Orders = kept
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindOrders, Op: OpDeleted, ID: id})
	return nil
}

// AdvanceOrderStatus moves an order to the next status in the cycle:
// pending -> working -> delivered -> pending.
func (s *Store) AdvanceOrderStatus(id int) (*Order, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range rec.Orders {
		if rec.Orders[i].ID != id {
			continue
		}
		rec.Orders[i].Status = rec.Orders[i].Status.Next()
		if err := s.persist(rec); err != nil {
			return nil, err
		}
		s.publish(Event{Kind: KindOrders, Op: OpUpdated, ID: id})
		out := rec.Orders[i]
		return &out, nil
	}
	return nil, &NotFoundError{Kind: "order", ID: id}
}

// --- Team members ---

type TeamMemberInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type TeamMemberUpdate struct {
	Name  *string `json:"name"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

func (s *Store) ListTeamMembers() ([]TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return rec.TeamMembers, nil
}

func (s *Store) AddTeamMember(in TeamMemberInput) (*TeamMember, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTeamMember(in, false)
}

func (s *Store) addTeamMember(in TeamMemberInput, isDefault bool) (*TeamMember, error) {
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("role", in.Role, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	tm := TeamMember{
		ID:        rec.NextTeamMemberID,
		Name:      strings.TrimSpace(in.Name),
		Role:      strings.TrimSpace(in.Role),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: s.now(),
		IsDefault: isDefault,
	}
	rec.NextTeamMemberID++
	rec.TeamMembers = append(rec.TeamMembers, tm)
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindTeamMembers, Op: OpAdded, ID: tm.ID})
	return &tm, nil
}

// EnsureDefaultMember creates the default "Owner" team member when the
// collection is empty. It returns nil without error when a member already
// exists.
func (s *Store) EnsureDefaultMember() (*TeamMember, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(rec.TeamMembers) > 0 {
		return nil, nil
	}
	return s.addTeamMember(TeamMemberInput{Name: "Owner", Role: "Owner"}, true)
}

func (s *Store) UpdateTeamMember(id int, upd TeamMemberUpdate) (*TeamMember, error) {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rec.TeamMembers {
		if rec.TeamMembers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Kind: "teamMember", ID: id}
	}
	tm := &rec.TeamMembers[idx]
	if upd.Name != nil {
		tm.Name = *upd.Name
	}
	if upd.Role != nil {
		tm.Role = *upd.Role
	}
	if upd.Phone != nil {
		tm.Phone = *upd.Phone
	}
	if upd.Email != nil {
		tm.Email = *upd.Email
	}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.publish(Event{Kind: KindTeamMembers, Op: OpUpdated, ID: id})
	out := *tm
	return &out, nil
}

// DeleteTeamMember removes a member. Orders keep their teamMemberId; the
// dangling reference renders as "Unknown" downstream.
func (s *Store) DeleteTeamMember(id int) error {
	defer s.events.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	kept := rec.TeamMembers[:0]
	removed := false
	for _, tm := range rec.TeamMembers {
		if tm.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tm)
	}
	if !removed {
		return nil
	}
	rec.TeamMembers = kept
	if err := s.persist(rec); err != nil {
		return err
	}
	s.publish(Event{Kind: KindTeamMembers, Op: OpDeleted, ID: id})
	return nil
}
