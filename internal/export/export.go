// Package export renders entity collections as CSV and the full record as
// pretty-printed JSON. Every CSV value is double-quoted with embedded quotes
// doubled; object values are JSON-encoded into the cell.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/darzihq/darzi/internal/store"
)

// Table is an ordered projection of a collection ready for CSV rendering.
type Table struct {
	Headers []string
	Rows    [][]any
}

// CSV renders the table. The header row is joined bare; data cells are
// always quoted.
func (t Table) CSV() string {
	if len(t.Rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers, ","))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = quote(cell(v))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func cell(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]float64:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Customers projects the customer collection.
func Customers(customers []store.Customer, dateFormat string) Table {
	t := Table{Headers: []string{"ID", "Name", "Phone", "Village", "Created Date"}}
	for _, c := range customers {
		t.Rows = append(t.Rows, []any{c.ID, c.Name, c.Phone, c.Village, FormatDate(c.CreatedAt, dateFormat)})
	}
	return t
}

// Measurements projects measurements with customer names resolved; dangling
// customer references render as "Unknown".
func Measurements(ms []store.Measurement, customers []store.Customer, dateFormat string) Table {
	names := map[int]string{}
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	t := Table{Headers: []string{"ID", "Customer", "Clothing Type", "Measurements", "Created Date"}}
	for _, m := range ms {
		name, ok := names[m.CustomerID]
		if !ok {
			name = "Unknown"
		}
		clothing := m.ClothingType
		if m.ClothingType == "other" && m.CustomType != "" {
			clothing = m.CustomType
		}
		t.Rows = append(t.Rows, []any{m.ID, name, clothing, m.Values, FormatDate(m.CreatedAt, dateFormat)})
	}
	return t
}

// Orders projects orders with customer and team member names resolved.
func Orders(orders []store.Order, customers []store.Customer, team []store.TeamMember, dateFormat string) Table {
	customerNames := map[int]string{}
	for _, c := range customers {
		customerNames[c.ID] = c.Name
	}
	memberNames := map[int]string{}
	for _, tm := range team {
		memberNames[tm.ID] = tm.Name
	}
	t := Table{Headers: []string{"ID", "Customer", "Team Member", "Description", "Price", "Status", "Created Date"}}
	for _, o := range orders {
		customer, ok := customerNames[o.CustomerID]
		if !ok {
			customer = "Unknown"
		}
		member := ""
		if o.TeamMemberID != 0 {
			member, ok = memberNames[o.TeamMemberID]
			if !ok {
				member = "Unknown"
			}
		}
		t.Rows = append(t.Rows, []any{o.ID, customer, member, o.Description, o.Price, string(o.Status), FormatDate(o.CreatedAt, dateFormat)})
	}
	return t
}

// RecordJSON dumps the full record, pretty-printed for backup files.
func RecordJSON(rec *store.Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}
