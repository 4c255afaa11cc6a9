package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend keeps the blob in memory and can be told to fail saves, to
// exercise the persistence failure path.
type memBackend struct {
	data     []byte
	failSave bool
}

func (b *memBackend) Load() ([]byte, error) {
	if b.data == nil {
		return nil, ErrNoRecord
	}
	return b.data, nil
}

func (b *memBackend) Save(data []byte) error {
	if b.failSave {
		return errors.New("quota exceeded")
	}
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *memBackend) Reset() error {
	b.data = nil
	return nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(NewFileBackend(filepath.Join(t.TempDir(), "tailor.json")))
	s.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	require.NoError(t, s.Initialize())
	return s
}

func TestInitializeDefaults(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.GetAll()
	require.NoError(t, err)
	assert.Empty(t, rec.Customers)
	assert.Empty(t, rec.Measurements)
	assert.Empty(t, rec.Orders)
	assert.Empty(t, rec.TeamMembers)
	assert.Equal(t, 1, rec.NextCustomerID)
	assert.Equal(t, 1, rec.NextMeasurementID)
	assert.Equal(t, 1, rec.NextOrderID)
	assert.Equal(t, 1, rec.NextTeamMemberID)
	assert.Equal(t, DefaultSizeFormat, rec.SizeFormat)
	assert.Equal(t, DefaultDateFormat, rec.DateFormat)
	assert.Equal(t, PolicyCustomOnly, rec.MeasurementFieldPolicy)
}

func TestInitializeIdempotent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "9876543210", Village: "Anand"})
	require.NoError(t, err)

	require.NoError(t, s.Initialize())
	customers, err := s.ListCustomers()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestAddCustomerAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "9876543210", Village: "Anand"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Raj", c.Name)
	assert.Equal(t, "9876543210", c.Phone)
	assert.Equal(t, "Anand", c.Village)
	assert.False(t, c.CreatedAt.IsZero())

	rec, err := s.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, rec.NextCustomerID)
}

func TestAddCustomerValidation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomer(CustomerInput{Name: "Raj"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Violations, "phone")
	assert.Contains(t, ve.Violations, "village")
	assert.NotContains(t, ve.Violations, "name")
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.AddCustomer(CustomerInput{Name: name, Phone: "1", Village: "V"})
		require.NoError(t, err)
	}
	require.NoError(t, s.DeleteCustomer(2))
	require.NoError(t, s.DeleteCustomer(3))

	c, err := s.AddCustomer(CustomerInput{Name: "D", Phone: "1", Village: "V"})
	require.NoError(t, err)
	assert.Equal(t, 4, c.ID)

	seen := map[int]bool{}
	customers, err := s.ListCustomers()
	require.NoError(t, err)
	for _, c := range customers {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestUpdatePreservesIDAndCreatedAt(t *testing.T) {
	s := newTestStore(t)
	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "9876543210", Village: "Anand"})
	require.NoError(t, err)

	name := "Rajesh"
	updated, err := s.UpdateCustomer(c.ID, CustomerUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.True(t, c.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Rajesh", updated.Name)
	// fields absent from the partial stay unchanged
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "Anand", updated.Village)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	var nf *NotFoundError

	_, err := s.UpdateCustomer(99, CustomerUpdate{})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer", nf.Kind)

	_, err = s.UpdateMeasurement(99, MeasurementUpdate{})
	require.ErrorAs(t, err, &nf)

	_, err = s.UpdateOrder(99, OrderUpdate{})
	require.ErrorAs(t, err, &nf)

	_, err = s.UpdateTeamMember(99, TeamMemberUpdate{})
	require.ErrorAs(t, err, &nf)

	_, err = s.AdvanceOrderStatus(99)
	require.ErrorAs(t, err, &nf)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCustomer(c.ID))
	customers, err := s.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)

	// deleting again is a no-op, not an error
	require.NoError(t, s.DeleteCustomer(c.ID))
}

func TestDeleteCustomerDoesNotCascade(t *testing.T) {
	s := newTestStore(t)
	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)
	o, err := s.AddOrder(OrderInput{CustomerID: c.ID, Price: 500, Status: "pending", Description: "shirt"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCustomer(c.ID))

	orders, err := s.ListOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
	assert.Equal(t, c.ID, orders[0].CustomerID, "dangling foreign key must survive")
}

func TestSaveAllRoundTripIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tailor.json")
	s := New(NewFileBackend(path))
	require.NoError(t, s.Initialize())
	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)
	_, err = s.AddOrder(OrderInput{CustomerID: 1, Price: 500, Status: "pending"})
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	rec, err := s.GetAll()
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(rec))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAdvanceOrderStatusCycles(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)
	o, err := s.AddOrder(OrderInput{CustomerID: 1, Price: 500, Status: "pending", Description: "shirt"})
	require.NoError(t, err)

	o, err = s.AdvanceOrderStatus(o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWorking, o.Status)

	o, err = s.AdvanceOrderStatus(o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, o.Status)

	// wraps around
	o, err = s.AdvanceOrderStatus(o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
}

func TestAddOrderValidation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddOrder(OrderInput{Price: -1, Status: "done"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Violations, "customerId")
	assert.Contains(t, ve.Violations, "status")
	assert.Contains(t, ve.Violations, "price")
}

func TestCustomFieldDuplicateKeyRejected(t *testing.T) {
	s := newTestStore(t)
	f, err := s.AddCustomField("Sleeve Length")
	require.NoError(t, err)
	assert.Equal(t, "sleeve_length", f.Key)

	// different label, same derived key
	_, err = s.AddCustomField("sleeve   length")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "already_exists", ve.Violations["label"])
}

func TestRemoveCustomFieldNoopWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomField("Neck")
	require.NoError(t, err)
	require.NoError(t, s.RemoveCustomField("neck"))
	require.NoError(t, s.RemoveCustomField("neck"))

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.Empty(t, settings.CustomMeasurementFields)
}

func TestFieldKeyDerivation(t *testing.T) {
	assert.Equal(t, "sleeve_length", FieldKey("Sleeve Length"))
	assert.Equal(t, "neck", FieldKey("  Neck  "))
	assert.Equal(t, "upper_arm_width", FieldKey("Upper  Arm\tWidth"))
}

func TestMeasurementFieldPolicies(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomField("Neck")
	require.NoError(t, err)

	// custom-only: the vocabulary is just the custom fields
	fields, err := s.MeasurementFields("shirt")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "neck", fields[0].Key)

	policy := PolicyFixedTemplates
	_, err = s.UpdateSettings(SettingsUpdate{MeasurementFieldPolicy: &policy})
	require.NoError(t, err)

	fields, err = s.MeasurementFields("shirt")
	require.NoError(t, err)
	assert.Greater(t, len(fields), 1)
	assert.Equal(t, "chest", fields[0].Key)
	assert.Equal(t, "neck", fields[len(fields)-1].Key)
}

func TestAddMeasurementFixedTemplateValidation(t *testing.T) {
	s := newTestStore(t)
	policy := PolicyFixedTemplates
	_, err := s.UpdateSettings(SettingsUpdate{MeasurementFieldPolicy: &policy})
	require.NoError(t, err)

	_, err = s.AddMeasurement(MeasurementInput{CustomerID: 1, ClothingType: "cape"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid_value", ve.Violations["clothingType"])

	// "other" requires a custom type name
	_, err = s.AddMeasurement(MeasurementInput{CustomerID: 1, ClothingType: "other"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Violations["customType"])

	m, err := s.AddMeasurement(MeasurementInput{
		CustomerID:   1,
		ClothingType: "other",
		CustomType:   "Kurta",
		Values:       map[string]float64{"chest": 40},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kurta", m.CustomType)
}

func TestAddMeasurementCustomOnlyAllowsFreeText(t *testing.T) {
	s := newTestStore(t)
	m, err := s.AddMeasurement(MeasurementInput{CustomerID: 1, ClothingType: "sherwani"})
	require.NoError(t, err)
	assert.Equal(t, "sherwani", m.ClothingType)
	assert.NotNil(t, m.Values)
}

func TestSettingsUpdateValidation(t *testing.T) {
	s := newTestStore(t)
	bad := "furlongs"
	_, err := s.UpdateSettings(SettingsUpdate{SizeFormat: &bad})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	cm := "centimeters"
	df := "DD/MM/YYYY"
	settings, err := s.UpdateSettings(SettingsUpdate{SizeFormat: &cm, DateFormat: &df})
	require.NoError(t, err)
	assert.Equal(t, "centimeters", settings.SizeFormat)
	assert.Equal(t, "DD/MM/YYYY", settings.DateFormat)
}

func TestImportRepairsCounters(t *testing.T) {
	s := newTestStore(t)
	raw := []byte(`{
		"customers": [{"id": 5, "name": "Raj", "phone": "1", "village": "V", "createdAt": "2024-01-01T00:00:00Z"}],
		"measurements": [],
		"orders": [],
		"teamMembers": [],
		"nextCustomerId": 1,
		"nextMeasurementId": 1,
		"nextOrderId": 1
	}`)
	rec, err := s.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.NextCustomerID)

	c, err := s.AddCustomer(CustomerInput{Name: "New", Phone: "1", Village: "V"})
	require.NoError(t, err)
	assert.Equal(t, 6, c.ID, "imported ids must never collide with new ones")
}

func TestImportRejectsBadShape(t *testing.T) {
	s := newTestStore(t)
	var ve *ValidationError

	_, err := s.Import([]byte(`not json`))
	require.ErrorAs(t, err, &ve)

	_, err = s.Import([]byte(`{"customers": {"id": 1}}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must_be_array", ve.Violations["customers"])
	assert.Equal(t, "required", ve.Violations["orders"])
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)

	rec, err := s.Reset()
	require.NoError(t, err)
	assert.Empty(t, rec.Customers)
	assert.Equal(t, 1, rec.NextCustomerID)
}

func TestCorruptStateSurfaced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tailor.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := New(NewFileBackend(path))
	_, err := s.GetAll()
	var cs *CorruptStateError
	require.ErrorAs(t, err, &cs)

	// corrupt state is not repaired silently
	require.NoError(t, s.Initialize())
	_, err = s.GetAll()
	require.ErrorAs(t, err, &cs)

	// explicit reset repairs it
	rec, err := s.Reset()
	require.NoError(t, err)
	assert.Empty(t, rec.Customers)
}

func TestPersistenceFailureSurfaced(t *testing.T) {
	b := &memBackend{}
	s := New(b)
	require.NoError(t, s.Initialize())

	b.failSave = true
	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)

	// the failed mutation is lost, prior state is intact
	b.failSave = false
	customers, err := s.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestEnsureDefaultMember(t *testing.T) {
	s := newTestStore(t)
	tm, err := s.EnsureDefaultMember()
	require.NoError(t, err)
	require.NotNil(t, tm)
	assert.Equal(t, "Owner", tm.Name)
	assert.True(t, tm.IsDefault)

	// second call is a no-op
	again, err := s.EnsureDefaultMember()
	require.NoError(t, err)
	assert.Nil(t, again)

	members, err := s.ListTeamMembers()
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamMemberIDsUseCounter(t *testing.T) {
	s := newTestStore(t)
	a, err := s.AddTeamMember(TeamMemberInput{Name: "Asha", Role: "Tailor"})
	require.NoError(t, err)
	b, err := s.AddTeamMember(TeamMemberInput{Name: "Biju", Role: "Cutter"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
}

func TestMutationEvents(t *testing.T) {
	s := newTestStore(t)
	var events []Event
	token := s.Subscribe(func(ev Event) { events = append(events, ev) })

	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteCustomer(c.ID))

	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: KindCustomers, Op: OpAdded, ID: c.ID}, events[0])
	assert.Equal(t, Event{Kind: KindCustomers, Op: OpDeleted, ID: c.ID}, events[1])

	s.Unsubscribe(token)
	_, err = s.AddCustomer(CustomerInput{Name: "S", Phone: "1", Village: "V"})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSubscriberCanReadStoreBack(t *testing.T) {
	s := newTestStore(t)
	var seen [][]Customer
	s.Subscribe(func(ev Event) {
		// the re-render pattern: read the collection back on every change
		customers, err := s.ListCustomers()
		require.NoError(t, err)
		seen = append(seen, customers)
	})

	c, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteCustomer(c.ID))

	require.Len(t, seen, 2)
	require.Len(t, seen[0], 1)
	assert.Equal(t, "Raj", seen[0][0].Name)
	assert.Empty(t, seen[1])
}

func TestSubscriberCanMutateStore(t *testing.T) {
	s := newTestStore(t)
	var events []Event
	s.Subscribe(func(ev Event) {
		events = append(events, ev)
		if ev.Kind == KindCustomers && ev.Op == OpAdded {
			_, err := s.AddOrder(OrderInput{CustomerID: ev.ID, Price: 100, Status: "pending"})
			require.NoError(t, err)
		}
	})

	_, err := s.AddCustomer(CustomerInput{Name: "Raj", Phone: "1", Village: "V"})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, KindCustomers, events[0].Kind)
	assert.Equal(t, KindOrders, events[1].Kind)
}

func TestGetAllBeforeInitializeReturnsDefaults(t *testing.T) {
	s := New(&memBackend{})
	rec, err := s.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, rec.NextCustomerID)
	assert.Empty(t, rec.Customers)
}
