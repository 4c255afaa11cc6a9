package store

import "time"

// Record is the single persisted aggregate: every collection, every counter
// and every setting lives in one blob that is read and rewritten wholesale.
type Record struct {
	Customers               []Customer    `json:"customers"`
	Measurements            []Measurement `json:"measurements"`
	Orders                  []Order       `json:"orders"`
	TeamMembers             []TeamMember  `json:"teamMembers"`
	NextCustomerID          int           `json:"nextCustomerId"`
	NextMeasurementID       int           `json:"nextMeasurementId"`
	NextOrderID             int           `json:"nextOrderId"`
	NextTeamMemberID        int           `json:"nextTeamMemberId"`
	SizeFormat              string        `json:"sizeFormat"`
	DateFormat              string        `json:"dateFormat"`
	Theme                   string        `json:"theme"`
	Language                string        `json:"language"`
	CustomMeasurementFields []Field       `json:"customMeasurementFields"`
	MeasurementFieldPolicy  string        `json:"measurementFieldPolicy"`
}

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Village   string    `json:"village"`
	CreatedAt time.Time `json:"createdAt"`
}

type Measurement struct {
	ID           int                `json:"id"`
	CustomerID   int                `json:"customerId"`
	ClothingType string             `json:"clothingType"`
	CustomType   string             `json:"customType,omitempty"`
	Values       map[string]float64 `json:"measurements"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type Order struct {
	ID           int         `json:"id"`
	CustomerID   int         `json:"customerId"`
	TeamMemberID int         `json:"teamMemberId,omitempty"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type TeamMember struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsDefault bool      `json:"isDefault,omitempty"`
}

// Field is a measurement field definition, either built-in (per clothing
// type) or user-defined. Keys are derived from labels and unique.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// OrderStatus cycles pending -> working -> delivered -> pending. There is no
// other transition.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusWorking   OrderStatus = "working"
	StatusDelivered OrderStatus = "delivered"
)

func (st OrderStatus) Valid() bool {
	switch st {
	case StatusPending, StatusWorking, StatusDelivered:
		return true
	}
	return false
}

// Next returns the following status in the cycle.
func (st OrderStatus) Next() OrderStatus {
	switch st {
	case StatusPending:
		return StatusWorking
	case StatusWorking:
		return StatusDelivered
	default:
		return StatusPending
	}
}

// Measurement field policies. Under fixed templates each clothing type
// carries a built-in field set; under custom-only the user-defined fields are
// the whole vocabulary and the clothing type is free text.
const (
	PolicyFixedTemplates = "fixed-templates"
	PolicyCustomOnly     = "custom-only"
)

const (
	DefaultSizeFormat = "inches"
	DefaultDateFormat = "MM/DD/YYYY"
	DefaultTheme      = "light"
	DefaultLanguage   = "en"
)

// SizeFormats lists the accepted measurement units.
var SizeFormats = []string{"inches", "centimeters", "millimeters"}

// DateFormats lists the accepted date display patterns.
var DateFormats = []string{"MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD", "DD-MM-YYYY", "MMM DD, YYYY", "DD MMM YYYY"}

func defaultRecord() *Record {
	return &Record{
		Customers:               []Customer{},
		Measurements:            []Measurement{},
		Orders:                  []Order{},
		TeamMembers:             []TeamMember{},
		NextCustomerID:          1,
		NextMeasurementID:       1,
		NextOrderID:             1,
		NextTeamMemberID:        1,
		SizeFormat:              DefaultSizeFormat,
		DateFormat:              DefaultDateFormat,
		Theme:                   DefaultTheme,
		Language:                DefaultLanguage,
		CustomMeasurementFields: []Field{},
		MeasurementFieldPolicy:  PolicyCustomOnly,
	}
}

// normalize fills gaps in records written by older clients: absent
// collections become empty, counters start at 1, settings fall back to
// defaults. Records persisted by this store are already normalized, so the
// load/save round trip stays byte-identical.
func (r *Record) normalize() {
	if r.Customers == nil {
		r.Customers = []Customer{}
	}
	if r.Measurements == nil {
		r.Measurements = []Measurement{}
	}
	if r.Orders == nil {
		r.Orders = []Order{}
	}
	if r.TeamMembers == nil {
		r.TeamMembers = []TeamMember{}
	}
	if r.CustomMeasurementFields == nil {
		r.CustomMeasurementFields = []Field{}
	}
	if r.NextCustomerID < 1 {
		r.NextCustomerID = 1
	}
	if r.NextMeasurementID < 1 {
		r.NextMeasurementID = 1
	}
	if r.NextOrderID < 1 {
		r.NextOrderID = 1
	}
	if r.NextTeamMemberID < 1 {
		r.NextTeamMemberID = 1
	}
	if r.SizeFormat == "" {
		r.SizeFormat = DefaultSizeFormat
	}
	if r.DateFormat == "" {
		r.DateFormat = DefaultDateFormat
	}
	if r.Theme == "" {
		r.Theme = DefaultTheme
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.MeasurementFieldPolicy == "" {
		r.MeasurementFieldPolicy = PolicyCustomOnly
	}
}

// repairCounters raises each id counter above the highest id present in its
// collection. Imported records may carry stale counters; ids must never
// collide after an import.
func (r *Record) repairCounters() {
	for _, c := range r.Customers {
		if c.ID >= r.NextCustomerID {
			r.NextCustomerID = c.ID + 1
		}
	}
	for _, m := range r.Measurements {
		if m.ID >= r.NextMeasurementID {
			r.NextMeasurementID = m.ID + 1
		}
	}
	for _, o := range r.Orders {
		if o.ID >= r.NextOrderID {
			r.NextOrderID = o.ID + 1
		}
	}
	for _, tm := range r.TeamMembers {
		if tm.ID >= r.NextTeamMemberID {
			r.NextTeamMemberID = tm.ID + 1
		}
	}
}
